package deployments

import (
	"time"

	"gorm.io/gorm"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Record(deployment *Deployment) (*Deployment, error) {
	deployment.CreatedAt = time.Now()

	err := r.db.Create(deployment).Error

	if err != nil {
		return nil, err
	}

	return deployment, nil
}

func (r *Repository) GetAll() ([]Deployment, error) {
	var deployments []Deployment

	err := r.db.Order("created_at DESC").Find(&deployments).Error

	if err != nil {
		return nil, err
	}

	return deployments, nil
}

func (r *Repository) GetByTarget(targetName string) ([]Deployment, error) {
	var deployments []Deployment

	err := r.db.Where("target_name = ?", targetName).Order("created_at DESC").Find(&deployments).Error

	if err != nil {
		return nil, err
	}

	return deployments, nil
}
