package db

import (
	"fmt"

	"asset_circulation_engine/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// nextNumber mints the next identifier in a scope, e.g. ("ASG", "2025/2026")
// -> ASG-2025/2026-0007. The counter row is bumped with a single conditional
// UPDATE inside the caller's transaction, so two concurrent mints in the
// same scope cannot produce the same number: the second UPDATE blocks on
// the row lock until the first commits.
func nextNumber(tx *gorm.DB, prefix, period string, width int) (string, error) {
	scope := prefix + "-" + period

	res := tx.Model(&models.SequenceCounter{}).
		Where("scope = ?", scope).
		UpdateColumn("value", gorm.Expr("value + 1"))
	if res.Error != nil {
		return "", res.Error
	}
	if res.RowsAffected == 0 {
		// First number in this scope. ON CONFLICT DO NOTHING keeps a lost
		// insert race from aborting the surrounding transaction.
		ins := tx.Clauses(clause.OnConflict{DoNothing: true}).
			Create(&models.SequenceCounter{Scope: scope, Value: 1})
		if ins.Error != nil {
			return "", ins.Error
		}
		if ins.RowsAffected == 0 {
			res = tx.Model(&models.SequenceCounter{}).
				Where("scope = ?", scope).
				UpdateColumn("value", gorm.Expr("value + 1"))
			if res.Error != nil {
				return "", res.Error
			}
		}
	}

	var c models.SequenceCounter
	if err := tx.First(&c, "scope = ?", scope).Error; err != nil {
		return "", err
	}
	return fmt.Sprintf("%s-%s-%0*d", prefix, period, width, c.Value), nil
}
