package deployments

import "time"

const (
	StatusSucceeded = "succeeded"
	StatusFailed    = "failed"
)

// Deployment is one recorded run of the deploy command.
type Deployment struct {
	ID         uint   `gorm:"primarykey"`
	TargetName string `gorm:"index"`
	RepoURL    string
	Branch     string
	Host       string
	Username   string
	Status     string
	Error      string
	CreatedAt  time.Time
}
