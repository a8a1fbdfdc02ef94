package models

import "golang.org/x/crypto/bcrypt"

type User struct {
	ID           int    `json:"id" gorm:"primaryKey;autoIncrement"`
	Email        string `json:"email" gorm:"type:varchar(100);uniqueIndex;not null"`
	Name         string `json:"name" gorm:"type:varchar(100);not null"`
	PasswordHash string `json:"-" gorm:"type:varchar(200);not null"`
}

func (u *User) SetPassword(password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	return nil
}

func (u *User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}
