package model

// RepoRef is a lightweight reference to a GitHub repository.
type RepoRef struct {
	Owner string `json:"owner"`
	Name  string `json:"name"`
}

// FullName returns the full repository name in owner/repo format.
func (r RepoRef) FullName() string {
	return r.Owner + "/" + r.Name
}

// IsZero reports whether the reference is empty.
func (r RepoRef) IsZero() bool {
	return r.Owner == "" && r.Name == ""
}

// IsValid reports whether both owner and name are present.
func (r RepoRef) IsValid() bool {
	return r.Owner != "" && r.Name != ""
}

// ParseRepoRef parses a full name like "owner/repo" into a RepoRef.
func ParseRepoRef(fullName string) RepoRef {
	for i := 0; i < len(fullName); i++ {
		if fullName[i] == '/' {
			return RepoRef{
				Owner: fullName[:i],
				Name:  fullName[i+1:],
			}
		}
	}
	return RepoRef{Name: fullName}
}
