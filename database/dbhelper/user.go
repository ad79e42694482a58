package dbhelper

import (
	"database/sql"

	"github.com/google/uuid"

	"github.com/ZEESHAN8692/restaurant-backend/database"
	"github.com/ZEESHAN8692/restaurant-backend/models"
)

func IsUserExists(email string) (bool, error) {
	var count int
	err := database.RestroDB.QueryRow(`SELECT COUNT(*) FROM users WHERE LOWER(email) = LOWER($1)`, email).Scan(&count)
	return count > 0, err
}

func CreateUser(tx *sql.Tx, username, email, hashedPassword string, role models.Role) (uuid.UUID, error) {
	var id uuid.UUID
	err := tx.QueryRow(`
		INSERT INTO users (username, email, password, role)
		VALUES ($1, LOWER($2), $3, $4)
		RETURNING id`,
		username, email, hashedPassword, role).Scan(&id)
	return id, err
}

func GetUserByEmail(email string) (*models.User, error) {
	var user models.User
	err := database.RestroDB.QueryRow(`
		SELECT id, username, email, password, role, created_at
		FROM users
		WHERE LOWER(email) = LOWER($1)`, email).
		Scan(&user.ID, &user.Username, &user.Email, &user.Password, &user.Role, &user.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func GetUserByID(id uuid.UUID) (*models.User, error) {
	var user models.User
	err := database.RestroDB.QueryRow(`
		SELECT id, username, email, role, created_at
		FROM users
		WHERE id = $1`, id).
		Scan(&user.ID, &user.Username, &user.Email, &user.Role, &user.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &user, nil
}
