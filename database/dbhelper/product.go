package dbhelper

import (
	"database/sql"
	"encoding/json"

	"github.com/google/uuid"

	"github.com/ZEESHAN8692/restaurant-backend/database"
	"github.com/ZEESHAN8692/restaurant-backend/models"
	"github.com/ZEESHAN8692/restaurant-backend/service"
)

const productColumns = `id, name, price, category, description, images, stock, is_active, created_at, updated_at`

func ListProducts(activeOnly bool) ([]models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products ORDER BY created_at DESC`
	if activeOnly {
		query = `SELECT ` + productColumns + ` FROM products WHERE is_active ORDER BY created_at DESC`
	}

	rows, err := database.RestroDB.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []models.Product
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, *product)
	}
	return products, rows.Err()
}

func GetProductByID(id uuid.UUID) (*models.Product, error) {
	row := database.RestroDB.QueryRow(`SELECT `+productColumns+` FROM products WHERE id = $1`, id)
	return scanProduct(row)
}

func CreateProduct(p *models.Product) error {
	images, err := json.Marshal(imagesOrEmpty(p.Images))
	if err != nil {
		return err
	}

	return database.RestroDB.QueryRow(`
		INSERT INTO products (name, price, category, description, images, stock, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at`,
		p.Name, p.Price, p.Category, p.Description, images, p.Stock, p.IsActive).
		Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
}

// GetProductForUpdate locks the row so the image-merge in UpdateProduct does
// not clobber a concurrent edit.
func GetProductForUpdate(tx *sql.Tx, id uuid.UUID) (*models.Product, error) {
	row := tx.QueryRow(`SELECT `+productColumns+` FROM products WHERE id = $1 FOR UPDATE`, id)
	return scanProduct(row)
}

func UpdateProduct(tx *sql.Tx, p *models.Product) error {
	images, err := json.Marshal(imagesOrEmpty(p.Images))
	if err != nil {
		return err
	}

	return tx.QueryRow(`
		UPDATE products
		SET name = $2, price = $3, category = $4, description = $5,
		    images = $6, stock = $7, is_active = $8, updated_at = now()
		WHERE id = $1
		RETURNING updated_at`,
		p.ID, p.Name, p.Price, p.Category, p.Description, images, p.Stock, p.IsActive).
		Scan(&p.UpdatedAt)
}

func DeleteProduct(id uuid.UUID) (int64, error) {
	result, err := database.RestroDB.Exec(`DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

// Catalog implements service.PriceLookup against the products table.
type Catalog struct {
	DB *sql.DB
}

func NewCatalog(db *sql.DB) *Catalog {
	return &Catalog{DB: db}
}

func (c *Catalog) ActivePrice(name string) (float64, string, error) {
	var price float64
	var category string
	err := c.DB.QueryRow(`
		SELECT price, category
		FROM products
		WHERE LOWER(name) = LOWER($1) AND is_active
		LIMIT 1`, name).Scan(&price, &category)
	if err == sql.ErrNoRows {
		return 0, "", service.ErrUnknownItem
	}
	if err != nil {
		return 0, "", err
	}
	return price, category, nil
}

func scanProduct(row rowScanner) (*models.Product, error) {
	var p models.Product
	var images []byte
	err := row.Scan(&p.ID, &p.Name, &p.Price, &p.Category, &p.Description,
		&images, &p.Stock, &p.IsActive, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(images, &p.Images); err != nil {
		return nil, err
	}
	return &p, nil
}

func imagesOrEmpty(images []models.ProductImage) []models.ProductImage {
	if images == nil {
		return []models.ProductImage{}
	}
	return images
}
