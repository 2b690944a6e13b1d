package repositories

import (
	"github.com/carena-app/backend/internal/models"
	"gorm.io/gorm"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	CreateUser(user *models.User) error
	GetUserByID(id uint) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByFirebaseUID(firebaseUID string) (*models.User, error)
	UpdateUser(user *models.User) error
	SetCancer(user *models.User, cancerID uint) error
	GetAnonymousUser(email string) (*models.User, error)
	AnonymizeAndDelete(userID, anonymousUserID uint) error
}

// MySQLUserRepository implements UserRepository for MySQL
type MySQLUserRepository struct {
	db *gorm.DB
}

// NewMySQLUserRepository creates a new MySQLUserRepository
func NewMySQLUserRepository(db *gorm.DB) *MySQLUserRepository {
	return &MySQLUserRepository{db: db}
}

// CreateUser creates a new user
func (r *MySQLUserRepository) CreateUser(user *models.User) error {
	return r.db.Create(user).Error
}

// GetUserByID retrieves a user by ID
func (r *MySQLUserRepository) GetUserByID(id uint) (*models.User, error) {
	var user models.User
	if err := r.db.Preload("Cancers").First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserByEmail retrieves a user by email
func (r *MySQLUserRepository) GetUserByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserByFirebaseUID retrieves a user by Firebase UID
func (r *MySQLUserRepository) GetUserByFirebaseUID(firebaseUID string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("firebase_uid = ?", firebaseUID).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateUser updates an existing user
func (r *MySQLUserRepository) UpdateUser(user *models.User) error {
	return r.db.Save(user).Error
}

// SetCancer replaces the user's cancer association. Replace keeps the join
// table at a single row instead of accumulating past choices.
func (r *MySQLUserRepository) SetCancer(user *models.User, cancerID uint) error {
	return r.db.Model(user).Association("Cancers").Replace(&models.Cancer{ID: cancerID})
}

// GetAnonymousUser retrieves the sentinel account that absorbs content of
// deleted users, creating it on first use.
func (r *MySQLUserRepository) GetAnonymousUser(email string) (*models.User, error) {
	var user models.User
	err := r.db.Where("email = ? AND is_anonymous = true", email).First(&user).Error
	if err == gorm.ErrRecordNotFound {
		user = models.User{Nickname: "anonymous", Email: email, IsAnonymous: true}
		if err := r.db.Create(&user).Error; err != nil {
			return nil, err
		}
		return &user, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// AnonymizeAndDelete reassigns a departing user's content to the anonymous
// sentinel and removes the account, atomically.
func (r *MySQLUserRepository) AnonymizeAndDelete(userID, anonymousUserID uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		reassign := []struct {
			model  interface{}
			column string
		}{
			{&models.Comment{}, "author_id"},
			{&models.Reply{}, "author_id"},
			{&models.Diary{}, "author_id"},
			{&models.Post{}, "author_id"},
			{&models.Question{}, "user_id"},
		}
		for _, t := range reassign {
			if err := tx.Model(t.model).Where(t.column+" = ?", userID).
				Update(t.column, anonymousUserID).Error; err != nil {
				return err
			}
		}

		if err := tx.Where("user_id = ?", userID).Delete(&models.RefreshToken{}).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().Where("user_id = ?", userID).Delete(&models.SurveyAnswer{}).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM user_cancers WHERE user_id = ?", userID).Error; err != nil {
			return err
		}

		return tx.Delete(&models.User{}, userID).Error
	})
}
