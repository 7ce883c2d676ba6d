package persistent

import (
	"errors"

	"artmarket/internal/entity"
	"artmarket/internal/model"

	"gorm.io/gorm"
)

type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	GetByEmail(email string) (*entity.User, error)
	GetByUsername(username string) (*entity.User, error)
	Update(user *entity.User) error
	List() ([]*entity.User, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(user *entity.User) error {
	userModel := toUserModel(user)
	if err := r.db.Create(userModel).Error; err != nil {
		return err
	}
	*user = *toUserEntity(userModel)
	return nil
}

func (r *userRepository) getOne(query string, arg string) (*entity.User, error) {
	var userModel model.UserModel
	if err := r.db.Where(query, arg).First(&userModel).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, entity.ErrNotFound
		}
		return nil, err
	}
	return toUserEntity(&userModel), nil
}

func (r *userRepository) GetByID(id string) (*entity.User, error) {
	return r.getOne("id = ?", id)
}

func (r *userRepository) GetByEmail(email string) (*entity.User, error) {
	return r.getOne("email = ?", email)
}

func (r *userRepository) GetByUsername(username string) (*entity.User, error) {
	return r.getOne("username = ?", username)
}

func (r *userRepository) Update(user *entity.User) error {
	return r.db.Save(toUserModel(user)).Error
}

func (r *userRepository) List() ([]*entity.User, error) {
	var userModels []model.UserModel
	if err := r.db.Order("created_at DESC").Find(&userModels).Error; err != nil {
		return nil, err
	}

	users := make([]*entity.User, len(userModels))
	for i := range userModels {
		users[i] = toUserEntity(&userModels[i])
	}
	return users, nil
}
