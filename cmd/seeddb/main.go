// seeddb 將內建的分類目錄與食材資料匯出為 SQLite 檔案，供 reference.source=sqlite 使用
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"ayurveda-nutrition/internal/core/reference"
	"ayurveda-nutrition/internal/pkg/common"

	"go.uber.org/zap"
)

func main() {
	out := flag.String("out", "reference.db", "SQLite 輸出路徑")
	categories := flag.String("categories", "", "分類 JSON 檔（預設使用內建資料）")
	foods := flag.String("foods", "", "食材 JSON 檔（預設使用內建資料）")
	flag.Parse()

	if err := common.InitLogger("info", ""); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer common.Sync()

	var src reference.Source = reference.NewEmbeddedSource()
	if *categories != "" || *foods != "" {
		if *categories == "" || *foods == "" {
			common.LogFatal("categories 與 foods 需同時指定")
		}
		src = reference.NewFileSource(*categories, *foods)
	}

	ctx := context.Background()
	// Load 會逐筆驗證
	data, err := reference.Load(ctx, src)
	if err != nil {
		common.LogFatal("Failed to load reference data", zap.Error(err))
	}

	db, err := reference.OpenSQLiteSource(*out)
	if err != nil {
		common.LogFatal("Failed to open sqlite", zap.String("path", *out), zap.Error(err))
	}
	defer db.Close()

	if err := db.Import(ctx, data.Catalog.All(), data.Foods.All()); err != nil {
		common.LogFatal("Failed to import reference data", zap.Error(err))
	}

	common.LogInfo("匯出完成",
		zap.String("path", *out),
		zap.String("source", src.Name()),
		zap.Int("categories", data.Catalog.Len()),
		zap.Int("foods", data.Foods.Len()),
	)
}
