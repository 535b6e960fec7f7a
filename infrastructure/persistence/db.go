// Package persistence provides the GORM-backed stores.
package persistence

import (
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/investmatch/investmatch/internal/database"
)

// allModels lists the tables owned by this package, in creation order.
func allModels() []any {
	return []any{
		&ProfileModel{},
		&StartupModel{},
		&InvestorModel{},
		&PipelineEntryModel{},
		&PitchModel{},
		&PitchRecipientModel{},
		&NotificationModel{},
		&PaymentModel{},
	}
}

// AutoMigrate creates or updates every table.
func AutoMigrate(db database.Database) error {
	if err := db.GORM().AutoMigrate(allModels()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

// ValidateSchema fails if any mapped table or column is absent.
func ValidateSchema(db database.Database) error {
	gdb := db.GORM()

	var missing []string
	for _, model := range allModels() {
		cols, err := missingColumns(gdb, model)
		if err != nil {
			return err
		}
		missing = append(missing, cols...)
	}
	if len(missing) > 0 {
		return fmt.Errorf("schema is missing %s", strings.Join(missing, ", "))
	}
	return nil
}

// missingColumns lists the table, or the table.column pairs, of model that
// the database lacks.
func missingColumns(gdb *gorm.DB, model any) ([]string, error) {
	stmt := &gorm.Statement{DB: gdb}
	if err := stmt.Parse(model); err != nil {
		return nil, fmt.Errorf("parse %T: %w", model, err)
	}
	table := stmt.Table

	m := gdb.Migrator()
	if !m.HasTable(model) {
		return []string{table}, nil
	}
	types, err := m.ColumnTypes(model)
	if err != nil {
		return nil, fmt.Errorf("columns of %s: %w", table, err)
	}

	have := make(map[string]struct{}, len(types))
	for _, ct := range types {
		have[ct.Name()] = struct{}{}
	}
	var out []string
	for _, f := range stmt.Schema.Fields {
		if f.DBName == "" || f.DBName == "-" {
			continue
		}
		if _, ok := have[f.DBName]; !ok {
			out = append(out, table+"."+f.DBName)
		}
	}
	return out, nil
}
