package infra

import "github.com/casbin/casbin/v2"

// NewEnforcer memuat model RBAC berdomain (domain = unit institusi) dari file
// conf. Policy tidak ikut dimuat di sini; rbac.Service mengisinya per unit
// dari database.
func NewEnforcer(modelPath string) (*casbin.Enforcer, error) {
	return casbin.NewEnforcer(modelPath)
}
