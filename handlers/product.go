package handlers

import (
	"database/sql"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/ZEESHAN8692/restaurant-backend/database"
	"github.com/ZEESHAN8692/restaurant-backend/database/dbhelper"
	"github.com/ZEESHAN8692/restaurant-backend/models"
	"github.com/ZEESHAN8692/restaurant-backend/utils"
)

// PublicProducts lists the public menu. Only active products are visible
// here; the admin listing below returns everything.
func PublicProducts(w http.ResponseWriter, r *http.Request) {
	products, err := dbhelper.ListProducts(true)
	if err != nil {
		logrus.WithError(err).Error("failed to list public products")
		utils.RespondError(w, http.StatusInternalServerError, "failed to fetch products")
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"message":  "Products fetched successfully",
		"products": products,
	})
}

func ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := dbhelper.ListProducts(false)
	if err != nil {
		logrus.WithError(err).Error("failed to list products")
		utils.RespondError(w, http.StatusInternalServerError, "failed to fetch products")
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"message":  "Products fetched successfully",
		"products": products,
	})
}

func GetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	product, err := dbhelper.GetProductByID(id)
	if err == sql.ErrNoRows {
		utils.RespondError(w, http.StatusNotFound, "product not found")
		return
	}
	if err != nil {
		logrus.WithError(err).Error("failed to fetch product")
		utils.RespondError(w, http.StatusInternalServerError, "failed to fetch product")
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Product fetched successfully",
		"product": product,
	})
}

func CreateProduct(w http.ResponseWriter, r *http.Request) {
	type request struct {
		Name        string                `json:"name"`
		Price       *float64              `json:"price"`
		Category    string                `json:"category"`
		Description string                `json:"description"`
		Stock       int                   `json:"stock"`
		Images      []models.ProductImage `json:"images"`
	}

	var req request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request")
		return
	}

	if req.Name == "" || req.Price == nil || req.Category == "" {
		utils.RespondError(w, http.StatusBadRequest, "name, price, category are required")
		return
	}
	if *req.Price < 0 {
		utils.RespondError(w, http.StatusBadRequest, "price must be non-negative")
		return
	}
	if req.Stock < 0 {
		utils.RespondError(w, http.StatusBadRequest, "stock must be non-negative")
		return
	}

	product := &models.Product{
		Name:        req.Name,
		Price:       *req.Price,
		Category:    req.Category,
		Description: req.Description,
		Stock:       req.Stock,
		IsActive:    true,
		Images:      req.Images,
	}

	if err := dbhelper.CreateProduct(product); err != nil {
		logrus.WithError(err).Error("failed to create product")
		utils.RespondError(w, http.StatusInternalServerError, "failed to add product")
		return
	}

	utils.RespondJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Product added successfully",
		"product": product,
	})
}

func UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	type request struct {
		Name        *string               `json:"name"`
		Price       *float64              `json:"price"`
		Category    *string               `json:"category"`
		Description *string               `json:"description"`
		Stock       *int                  `json:"stock"`
		IsActive    *bool                 `json:"isActive"`
		Images      []models.ProductImage `json:"images"`
	}

	var req request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request")
		return
	}
	if req.Price != nil && *req.Price < 0 {
		utils.RespondError(w, http.StatusBadRequest, "price must be non-negative")
		return
	}
	if req.Stock != nil && *req.Stock < 0 {
		utils.RespondError(w, http.StatusBadRequest, "stock must be non-negative")
		return
	}

	var product *models.Product
	txErr := database.Tx(func(tx *sql.Tx) error {
		product, err = dbhelper.GetProductForUpdate(tx, id)
		if err != nil {
			return err
		}

		if req.Name != nil {
			product.Name = *req.Name
		}
		if req.Price != nil {
			product.Price = *req.Price
		}
		if req.Category != nil {
			product.Category = *req.Category
		}
		if req.Description != nil {
			product.Description = *req.Description
		}
		if req.Stock != nil {
			product.Stock = *req.Stock
		}
		if req.IsActive != nil {
			product.IsActive = *req.IsActive
		}
		// new images are appended, never replace the existing set
		product.Images = append(product.Images, req.Images...)

		return dbhelper.UpdateProduct(tx, product)
	})
	if txErr == sql.ErrNoRows {
		utils.RespondError(w, http.StatusNotFound, "product not found")
		return
	}
	if txErr != nil {
		logrus.WithError(txErr).Error("failed to update product")
		utils.RespondError(w, http.StatusInternalServerError, "failed to update product")
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Product updated successfully",
		"product": product,
	})
}

func DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	affected, err := dbhelper.DeleteProduct(id)
	if err != nil {
		logrus.WithError(err).Error("failed to delete product")
		utils.RespondError(w, http.StatusInternalServerError, "failed to delete product")
		return
	}
	if affected == 0 {
		utils.RespondError(w, http.StatusNotFound, "product not found")
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]string{
		"message": "Product deleted successfully",
	})
}
