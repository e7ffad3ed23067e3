package postgres

import (
	costDatamodel "github.com/frahmantamala/project-tracker/internal/core/datamodel/cost"
	"github.com/frahmantamala/project-tracker/internal/cost"
	"gorm.io/gorm"
)

// CostRepository implements cost.RepositoryAPI using GORM
type CostRepository struct {
	db *gorm.DB
}

func NewCostRepository(db *gorm.DB) *CostRepository {
	return &CostRepository{db: db}
}

func (r *CostRepository) List(projectID string) ([]*cost.Cost, error) {
	query := r.db.Model(&costDatamodel.Cost{})
	if projectID != "" {
		query = query.Where("project_id = ?", projectID)
	}

	var rows []costDatamodel.Cost
	if err := query.Order("incurred_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}

	costs := make([]*cost.Cost, 0, len(rows))
	for i := range rows {
		costs = append(costs, cost.FromDataModel(&rows[i]))
	}
	return costs, nil
}

func (r *CostRepository) GetByID(id string) (*cost.Cost, error) {
	var row costDatamodel.Cost
	if err := r.db.Where("id = ?", id).First(&row).Error; err != nil {
		return nil, err
	}
	return cost.FromDataModel(&row), nil
}

func (r *CostRepository) Create(c *cost.Cost) error {
	return r.db.Create(cost.ToDataModel(c)).Error
}

func (r *CostRepository) Update(c *cost.Cost) error {
	return r.db.Save(cost.ToDataModel(c)).Error
}

func (r *CostRepository) Delete(id string) error {
	return r.db.Where("id = ?", id).Delete(&costDatamodel.Cost{}).Error
}
