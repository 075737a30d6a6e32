package reference

import (
	"context"
	"database/sql"
	"fmt"

	"ayurveda-nutrition/internal/core/catalog"
	"ayurveda-nutrition/internal/core/food"
	"ayurveda-nutrition/internal/pkg/common"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

// SQLiteSource 從 SQLite 資料庫讀取；清單欄位以 JSON 文字保存
type SQLiteSource struct {
	db   *sql.DB
	path string
}

// OpenSQLiteSource 開啟資料庫並確保資料表存在
func OpenSQLiteSource(path string) (*SQLiteSource, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := &SQLiteSource{db: db, path: path}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return s, nil
}

// Name 來源名稱
func (s *SQLiteSource) Name() string { return "sqlite" }

// Close 關閉資料庫
func (s *SQLiteSource) Close() error {
	return s.db.Close()
}

func (s *SQLiteSource) initSchema() error {
	schema := `
    CREATE TABLE IF NOT EXISTS categories (
        position INTEGER PRIMARY KEY,
        axis TEXT NOT NULL,
        sub_label TEXT NOT NULL,
        recommended_foods TEXT NOT NULL DEFAULT '[]',
        avoid_foods TEXT NOT NULL DEFAULT '[]',
        rationale TEXT NOT NULL DEFAULT '',
        meal_suggestions TEXT NOT NULL DEFAULT '',
        special_notes TEXT NOT NULL DEFAULT ''
    );

    CREATE TABLE IF NOT EXISTS foods (
        position INTEGER PRIMARY KEY,
        id TEXT NOT NULL UNIQUE,
        name TEXT NOT NULL,
        serving TEXT NOT NULL DEFAULT '',
        nutrients TEXT NOT NULL,
        properties TEXT NOT NULL
    );

    CREATE INDEX IF NOT EXISTS idx_categories_axis ON categories(axis);
    `

	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// Categories 依寫入順序讀取分類
func (s *SQLiteSource) Categories(ctx context.Context) ([]catalog.Record, error) {
	rows, err := s.db.QueryContext(ctx, `
        SELECT axis, sub_label, recommended_foods, avoid_foods, rationale, meal_suggestions, special_notes
        FROM categories
        ORDER BY position
    `)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	var records []catalog.Record
	for rows.Next() {
		var (
			r                  catalog.Record
			axis               string
			recommended, avoid string
		)
		if err := rows.Scan(&axis, &r.SubLabel, &recommended, &avoid, &r.Rationale, &r.MealSuggestions, &r.SpecialNotes); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		r.Axis = catalog.Axis(axis)
		if err := common.ParseJSONBytes([]byte(recommended), &r.RecommendedFoods); err != nil {
			return nil, fmt.Errorf("category %q recommended_foods: %w", r.SubLabel, err)
		}
		if err := common.ParseJSONBytes([]byte(avoid), &r.AvoidFoods); err != nil {
			return nil, fmt.Errorf("category %q avoid_foods: %w", r.SubLabel, err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate categories: %w", err)
	}
	return records, nil
}

// Foods 依寫入順序讀取食材
func (s *SQLiteSource) Foods(ctx context.Context) ([]food.Item, error) {
	rows, err := s.db.QueryContext(ctx, `
        SELECT id, name, serving, nutrients, properties
        FROM foods
        ORDER BY position
    `)
	if err != nil {
		return nil, fmt.Errorf("failed to query foods: %w", err)
	}
	defer rows.Close()

	var items []food.Item
	for rows.Next() {
		var (
			it                    food.Item
			nutrients, properties string
		)
		if err := rows.Scan(&it.ID, &it.Name, &it.Serving, &nutrients, &properties); err != nil {
			return nil, fmt.Errorf("failed to scan food: %w", err)
		}
		if err := common.ParseJSONBytesStrict([]byte(nutrients), &it.Nutrients); err != nil {
			return nil, fmt.Errorf("food %q nutrients: %w", it.ID, err)
		}
		if err := common.ParseJSONBytesStrict([]byte(properties), &it.Properties); err != nil {
			return nil, fmt.Errorf("food %q properties: %w", it.ID, err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate foods: %w", err)
	}
	return items, nil
}

// Import 以單一交易取代資料庫內容
func (s *SQLiteSource) Import(ctx context.Context, records []catalog.Record, items []food.Item) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM categories`); err != nil {
		return fmt.Errorf("failed to clear categories: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM foods`); err != nil {
		return fmt.Errorf("failed to clear foods: %w", err)
	}

	categoryQuery := `
        INSERT INTO categories (position, axis, sub_label, recommended_foods, avoid_foods, rationale, meal_suggestions, special_notes)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?)
    `
	for i, r := range records {
		recommended, err := jsonText(r.RecommendedFoods)
		if err != nil {
			return err
		}
		avoid, err := jsonText(r.AvoidFoods)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, categoryQuery,
			i, string(r.Axis), r.SubLabel, recommended, avoid,
			r.Rationale, r.MealSuggestions, r.SpecialNotes); err != nil {
			return fmt.Errorf("failed to insert category %q: %w", r.SubLabel, err)
		}
	}

	foodQuery := `
        INSERT INTO foods (position, id, name, serving, nutrients, properties)
        VALUES (?, ?, ?, ?, ?, ?)
    `
	for i, it := range items {
		nutrients, err := jsonText(it.Nutrients)
		if err != nil {
			return err
		}
		properties, err := jsonText(it.Properties)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, foodQuery, i, it.ID, it.Name, it.Serving, nutrients, properties); err != nil {
			return fmt.Errorf("failed to insert food %q: %w", it.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit import: %w", err)
	}
	common.LogInfo("參考資料已匯入 SQLite",
		zap.String("path", s.path),
		zap.Int("categories", len(records)),
		zap.Int("foods", len(items)),
	)
	return nil
}

// jsonText nil 切片存成 "[]"
func jsonText(v interface{}) (string, error) {
	text, err := common.ToJSON(v)
	if err != nil {
		return "", fmt.Errorf("failed to marshal: %w", err)
	}
	if text == "null" {
		return "[]", nil
	}
	return text, nil
}
