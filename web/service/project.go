package service

import (
	"errors"

	"github.com/jokafor/portfolio/database"
	"github.com/jokafor/portfolio/database/model"
)

var ErrTitleTaken = errors.New("a project with this title already exists")

type ProjectService struct{}

func (s *ProjectService) GetProjects() ([]*model.Project, error) {
	db := database.GetDB()

	var projects []*model.Project
	err := db.Model(model.Project{}).
		Order("created_at desc").
		Find(&projects).
		Error
	if err != nil {
		return nil, err
	}
	return projects, nil
}

func (s *ProjectService) GetProject(id int) (*model.Project, error) {
	db := database.GetDB()

	project := &model.Project{}
	err := db.Model(model.Project{}).
		Where("id = ?", id).
		First(project).
		Error
	if err != nil {
		return nil, err
	}
	return project, nil
}

// GetProjectsByUser returns the projects owned by the given user. Ownership
// is an explicit foreign key, not a navigable object graph.
func (s *ProjectService) GetProjectsByUser(userId int) ([]*model.Project, error) {
	db := database.GetDB()

	var projects []*model.Project
	err := db.Model(model.Project{}).
		Where("user_id = ?", userId).
		Order("created_at desc").
		Find(&projects).
		Error
	if err != nil {
		return nil, err
	}
	return projects, nil
}

func (s *ProjectService) AddProject(project *model.Project) error {
	db := database.GetDB()

	taken, err := s.titleTaken(project.Title, 0)
	if err != nil {
		return err
	}
	if taken {
		return ErrTitleTaken
	}
	return db.Create(project).Error
}

func (s *ProjectService) UpdateProject(project *model.Project) error {
	db := database.GetDB()

	taken, err := s.titleTaken(project.Title, project.Id)
	if err != nil {
		return err
	}
	if taken {
		return ErrTitleTaken
	}
	return db.Save(project).Error
}

func (s *ProjectService) DelProject(id int) error {
	db := database.GetDB()

	// First so a missing id surfaces as not-found instead of a no-op delete.
	project := &model.Project{}
	err := db.Model(model.Project{}).
		Where("id = ?", id).
		First(project).
		Error
	if err != nil {
		return err
	}
	return db.Delete(project).Error
}

// titleTaken reports whether another project (excluding excludeId) already
// uses the title.
func (s *ProjectService) titleTaken(title string, excludeId int) (bool, error) {
	db := database.GetDB()

	var count int64
	err := db.Model(model.Project{}).
		Where("title = ? AND id != ?", title, excludeId).
		Count(&count).
		Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
