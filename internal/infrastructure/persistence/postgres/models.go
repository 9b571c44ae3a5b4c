package postgres

import "gorm.io/gorm"

// UserModel é o model GORM para usuários
type UserModel struct {
	ID           uint    `gorm:"primaryKey;autoIncrement"`
	Name         string  `gorm:"type:varchar(100);not null"`
	Email        string  `gorm:"type:varchar(255);uniqueIndex;not null"`
	PasswordHash string  `gorm:"type:varchar(255);not null"`
	Role         string  `gorm:"type:varchar(20);not null;index"`
	IsVerified   bool    `gorm:"not null;default:false"`
	IsActive     bool    `gorm:"not null;default:true"`
	ProfileImage *string `gorm:"type:varchar(500)"`
	CreatedAt    int64   `gorm:"autoCreateTime;index"`
	UpdatedAt    int64   `gorm:"autoUpdateTime"`
}

func (UserModel) TableName() string {
	return "users"
}

// PostModel é o model GORM para posts
type PostModel struct {
	ID        uint       `gorm:"primaryKey;autoIncrement"`
	Title     string     `gorm:"type:varchar(255);not null"`
	Body      string     `gorm:"type:text;not null"`
	Category  string     `gorm:"type:varchar(20);not null;default:Tech"`
	Status    string     `gorm:"type:varchar(10);not null;default:posted"`
	MediaType *string    `gorm:"type:varchar(20)"`
	MediaURL  *string    `gorm:"type:varchar(500)"`
	AuthorID  uint       `gorm:"not null;index"`
	Author    *UserModel `gorm:"foreignKey:AuthorID"`
	Likes     int        `gorm:"not null;default:0"`
	Comments  int        `gorm:"not null;default:0"`
	CreatedAt int64      `gorm:"autoCreateTime;index"`
	UpdatedAt int64      `gorm:"autoUpdateTime"`
}

func (PostModel) TableName() string {
	return "posts"
}

// PasswordResetTokenModel é o model GORM para tokens de redefinição
type PasswordResetTokenModel struct {
	ID        string `gorm:"type:uuid;primaryKey"`
	UserID    uint   `gorm:"not null;index"`
	Token     string `gorm:"type:varchar(1024);uniqueIndex;not null"`
	ExpiresAt int64  `gorm:"not null"`
	CreatedAt int64  `gorm:"autoCreateTime"`
	UpdatedAt int64  `gorm:"autoUpdateTime"`
}

func (PasswordResetTokenModel) TableName() string {
	return "password_reset_tokens"
}

// Migrate cria ou ajusta o schema das tabelas da aplicação
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&UserModel{},
		&PostModel{},
		&PasswordResetTokenModel{},
	)
}
