package common

import (
	"errors"
	"eticket/src/db"
	"eticket/src/models"
	"eticket/src/types"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CreditPoints appends a row to the user's point ledger. The user row is
// locked first so concurrent writers for the same user serialize and every
// balance_after snapshot is consistent with the rows before it.
func CreditPoints(tx *gorm.DB, userID uint, points int, txType types.PointTransactionType, reason string, orderID *uint) (*models.PointTransaction, error) {
	var user models.User
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where(&models.User{ID: userID}).
		First(&user).Error; err != nil {
		return nil, err
	}
	var balance int64
	if err := tx.Model(&models.PointTransaction{}).
		Where("user_id = ?", userID).
		Select("COALESCE(SUM(points), 0)").
		Scan(&balance).Error; err != nil {
		return nil, err
	}
	ptx := models.PointTransaction{
		UserID:       userID,
		Points:       points,
		Type:         txType,
		Reason:       reason,
		OrderID:      orderID,
		BalanceAfter: int(balance) + points,
	}
	if err := tx.Create(&ptx).Error; err != nil {
		return nil, err
	}
	return &ptx, nil
}

// GetPointBalance derives the balance from the ledger; there is no stored
// balance column to drift out of sync.
func GetPointBalance(userID uint) (int, error) {
	conn := db.GetDb()
	var user models.User
	if err := conn.Where(&models.User{ID: userID}).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, types.ErrUserNotFound
		}
		return 0, err
	}
	var balance int64
	if err := conn.Model(&models.PointTransaction{}).
		Where("user_id = ?", userID).
		Select("COALESCE(SUM(points), 0)").
		Scan(&balance).Error; err != nil {
		return 0, err
	}
	return int(balance), nil
}

func GetPointHistory(userID uint, limit int) ([]models.PointTransaction, error) {
	conn := db.GetDb()
	if limit <= 0 {
		limit = 50
	}
	var history []models.PointTransaction
	if err := conn.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&history).Error; err != nil {
		return nil, err
	}
	return history, nil
}
