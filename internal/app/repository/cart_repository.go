package repository

import (
	"github.com/rahat/tastybites-backend/internal/app/model"
	"github.com/rahat/tastybites-backend/pkg/logger"
	"gorm.io/gorm"
)

// CartRepository handles cart item data access
type CartRepository interface {
	Create(item *model.CartItem) error
	FindByID(id uint) (*model.CartItem, error)
	FindByUserID(userID uint) ([]model.CartItem, error)
	FindByUserIDTx(tx *gorm.DB, userID uint) ([]model.CartItem, error)
	FindByUserItemVariant(userID, menuItemID uint, variantID *uint) (*model.CartItem, error)
	Update(item *model.CartItem) error
	Delete(item *model.CartItem) error
	DeleteByUserID(userID uint) error
	DeleteByIDsTx(tx *gorm.DB, ids []uint) error
}

type cartRepository struct {
	db *gorm.DB
}

// NewCartRepository creates a new cart repository
func NewCartRepository(db *gorm.DB) CartRepository {
	return &cartRepository{db: db}
}

func (r *cartRepository) Create(item *model.CartItem) error {
	logger.Debug("Creating cart item in database", map[string]interface{}{
		"user_id":      item.UserID,
		"menu_item_id": item.MenuItemID,
		"quantity":     item.Quantity,
	})

	if err := r.db.Create(item).Error; err != nil {
		logger.Error("Failed to create cart item in database", err, map[string]interface{}{
			"user_id":      item.UserID,
			"menu_item_id": item.MenuItemID,
		})
		return err
	}
	return nil
}

func (r *cartRepository) FindByID(id uint) (*model.CartItem, error) {
	var item model.CartItem
	err := r.db.
		Preload("MenuItem").
		Preload("Variant").
		First(&item, id).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *cartRepository) FindByUserID(userID uint) ([]model.CartItem, error) {
	var items []model.CartItem
	err := r.db.
		Preload("MenuItem").
		Preload("MenuItem.Category").
		Preload("Variant").
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&items).Error
	if err != nil {
		logger.Error("Failed to find cart items", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}
	return items, nil
}

// FindByUserIDTx reads the user's cart lines through an open transaction,
// so checkout's totals are computed from the same lines it snapshots.
func (r *cartRepository) FindByUserIDTx(tx *gorm.DB, userID uint) ([]model.CartItem, error) {
	var items []model.CartItem
	err := tx.
		Preload("MenuItem").
		Preload("MenuItem.Category").
		Preload("Variant").
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&items).Error
	if err != nil {
		logger.Error("Failed to find cart items", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}
	return items, nil
}

// FindByUserItemVariant looks up the cart line this item/variant pair
// would merge into. Returns gorm.ErrRecordNotFound when no line exists.
func (r *cartRepository) FindByUserItemVariant(userID, menuItemID uint, variantID *uint) (*model.CartItem, error) {
	var item model.CartItem
	query := r.db.Where("user_id = ? AND menu_item_id = ?", userID, menuItemID)
	if variantID != nil {
		query = query.Where("variant_id = ?", *variantID)
	} else {
		query = query.Where("variant_id IS NULL")
	}
	if err := query.First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *cartRepository) Update(item *model.CartItem) error {
	if err := r.db.Save(item).Error; err != nil {
		logger.Error("Failed to update cart item in database", err, map[string]interface{}{
			"cart_item_id": item.ID,
		})
		return err
	}
	return nil
}

func (r *cartRepository) Delete(item *model.CartItem) error {
	if err := r.db.Delete(item).Error; err != nil {
		logger.Error("Failed to delete cart item in database", err, map[string]interface{}{
			"cart_item_id": item.ID,
		})
		return err
	}
	return nil
}

func (r *cartRepository) DeleteByUserID(userID uint) error {
	logger.Debug("Clearing cart in database", map[string]interface{}{
		"user_id": userID,
	})
	return r.db.Where("user_id = ?", userID).Delete(&model.CartItem{}).Error
}

// DeleteByIDsTx removes exactly the given lines through an open
// transaction. Checkout uses it so a line added while the order is being
// written survives instead of being silently wiped.
func (r *cartRepository) DeleteByIDsTx(tx *gorm.DB, ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	return tx.Where("id IN ?", ids).Delete(&model.CartItem{}).Error
}
