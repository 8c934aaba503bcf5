// Package policy centralizes role requirements per resource and operation.
// Handlers never declare role sets themselves; they reference this table, so
// sibling endpoints of one resource cannot drift apart.
package policy

import (
	"github.com/stagehub/stagehub/internal/app/models"
)

// Resource identifies a guarded resource family
type Resource string

// Operation identifies an operation on a resource
type Operation string

// Resources
const (
	ResourceCompanies   Resource = "companies"
	ResourceStudents    Resource = "students"
	ResourceInternships Resource = "internships"
	ResourceMessaging   Resource = "messaging"
)

// Operations
const (
	OpList             Operation = "list"
	OpGet              Operation = "get"
	OpImage            Operation = "image"
	OpCreate           Operation = "create"
	OpUpdate           Operation = "update"
	OpDelete           Operation = "delete"
	OpStatus           Operation = "status"
	OpApply            Operation = "apply"
	OpListApplications Operation = "listApplications"
	OpSend             Operation = "send"
)

var (
	adminOnly        = []models.RoleType{models.RoleAdmin}
	adminStudent     = []models.RoleType{models.RoleAdmin, models.RoleStudent}
	adminCompany     = []models.RoleType{models.RoleAdmin, models.RoleCompany}
	anyAuthenticated = []models.RoleType{models.RoleAdmin, models.RoleStudent, models.RoleCompany}
)

// table maps resource+operation to the allowed roles. Read operations of one
// resource always share a single role set.
var table = map[Resource]map[Operation][]models.RoleType{
	ResourceCompanies: {
		OpList:   adminStudent,
		OpGet:    adminStudent,
		OpImage:  adminStudent,
		OpCreate: adminOnly,
		OpUpdate: adminOnly,
		OpDelete: adminOnly,
	},
	ResourceStudents: {
		OpList:   adminCompany,
		OpGet:    adminCompany,
		OpImage:  adminCompany,
		OpCreate: adminOnly,
		OpDelete: adminOnly,
		// Profile edits are restricted to the owning student; ownership is
		// enforced by the service on top of the role gate.
		OpUpdate: {models.RoleStudent},
	},
	ResourceInternships: {
		OpList:   anyAuthenticated,
		OpGet:    anyAuthenticated,
		OpCreate: adminCompany,
		OpUpdate: adminCompany,
		OpDelete: adminCompany,
		OpStatus:           adminCompany,
		OpApply:            adminStudent,
		OpListApplications: adminCompany,
	},
	ResourceMessaging: {
		OpCreate: anyAuthenticated,
		OpList:   anyAuthenticated,
		OpGet:    anyAuthenticated,
		OpSend:   anyAuthenticated,
	},
}

// AllowedRoles returns the roles permitted to perform op on resource. An
// unknown pair yields an empty set, which denies everyone.
func AllowedRoles(resource Resource, op Operation) []models.RoleType {
	ops, ok := table[resource]
	if !ok {
		return nil
	}
	return ops[op]
}

// Can reports whether role may perform op on resource.
func Can(role models.RoleType, resource Resource, op Operation) bool {
	for _, allowed := range AllowedRoles(resource, op) {
		if allowed == role {
			return true
		}
	}
	return false
}

// Resources returns all resources present in the table.
func Resources() []Resource {
	out := make([]Resource, 0, len(table))
	for r := range table {
		out = append(out, r)
	}
	return out
}

// OperationsFor returns all operations declared for a resource.
func OperationsFor(resource Resource) []Operation {
	ops, ok := table[resource]
	if !ok {
		return nil
	}
	out := make([]Operation, 0, len(ops))
	for op := range ops {
		out = append(out, op)
	}
	return out
}
