package repository

import "fmt"

const (
	repositoryDisplayTemplateConstant = "%s/%s"
)

// Repository captures the source metadata needed to set up a mirror.
// Records are populated once from the source API and never mutated afterwards.
type Repository struct {
	Name        string
	CloneURL    string
	OwnerLogin  string
	Private     bool
	Fork        bool
	Description string
}

// FullName renders the owner-qualified repository name.
func (record Repository) FullName() string {
	return fmt.Sprintf(repositoryDisplayTemplateConstant, record.OwnerLogin, record.Name)
}
