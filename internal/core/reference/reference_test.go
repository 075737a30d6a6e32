package reference

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"ayurveda-nutrition/internal/core/catalog"
	"ayurveda-nutrition/internal/core/food"
	"ayurveda-nutrition/internal/infrastructure/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const categoriesJSON = `[
  {"axis": "occupation", "sub_label": "Software Engineers", "recommended_foods": ["almonds"], "avoid_foods": [], "rationale": "", "meal_suggestions": ""},
  {"axis": "gender-specific", "sub_label": "PCOS Management", "recommended_foods": ["cinnamon"], "avoid_foods": ["sugar"], "rationale": "", "meal_suggestions": ""}
]`

const foodsJSON = `[
  {"id": "rice", "name": "Rice", "serving": "1 cup", "nutrients": {"calories": 130}, "properties": {"rasa": ["sweet"], "virya": "cooling", "doshas": {"vata": "decreases", "pitta": "decreases", "kapha": "increases"}}}
]`

func TestEmbeddedSeedLoads(t *testing.T) {
	data, err := Load(context.Background(), NewEmbeddedSource())
	require.NoError(t, err)

	assert.Equal(t, "embedded", data.Source)
	counts := data.Catalog.CountByAxis()
	for _, axis := range catalog.Axes {
		assert.Positive(t, counts[axis], "axis %s has no seed categories", axis)
	}

	rice, ok := data.Foods.Get("rice")
	require.True(t, ok)
	assert.Equal(t, 130.0, rice.Nutrients.Calories)

	var labels []string
	for _, r := range data.Catalog.ByAxis(catalog.AxisOccupation) {
		labels = append(labels, r.SubLabel)
	}
	assert.Contains(t, labels, "Software Engineers")
	assert.Equal(t, "Infants (0-1 years)", data.Catalog.ByAxis(catalog.AxisAge)[0].SubLabel)
}

func writeFiles(t *testing.T, categories, foods string) (string, string) {
	t.Helper()
	dir := t.TempDir()
	cp := filepath.Join(dir, "categories.json")
	fp := filepath.Join(dir, "foods.json")
	require.NoError(t, os.WriteFile(cp, []byte(categories), 0o600))
	require.NoError(t, os.WriteFile(fp, []byte(foods), 0o600))
	return cp, fp
}

func TestFileSource(t *testing.T) {
	cp, fp := writeFiles(t, categoriesJSON, foodsJSON)

	data, err := Load(context.Background(), NewFileSource(cp, fp))
	require.NoError(t, err)
	assert.Equal(t, 2, data.Catalog.Len())
	assert.Equal(t, catalog.AxisGender, data.Catalog.All()[1].Axis)
	assert.Equal(t, 1, data.Foods.Len())
}

func TestFileSourceRejectsUnknownFields(t *testing.T) {
	cp, fp := writeFiles(t, `[{"axis":"age","sub_label":"Infants","colour":"red"}]`, foodsJSON)
	_, err := Load(context.Background(), NewFileSource(cp, fp))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load categories from file")
}

func TestFileSourceRejectsBadAxis(t *testing.T) {
	cp, fp := writeFiles(t, `[{"axis":"zodiac","sub_label":"Leo"}]`, foodsJSON)
	_, err := Load(context.Background(), NewFileSource(cp, fp))
	require.Error(t, err)
}

func TestFileSourceMissingFile(t *testing.T) {
	_, err := Load(context.Background(), NewFileSource("/nonexistent/c.json", "/nonexistent/f.json"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestHTTPSource(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/categories":
			_, _ = w.Write([]byte(categoriesJSON))
		case "/foods":
			_, _ = w.Write([]byte(foodsJSON))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	data, err := Load(context.Background(), NewHTTPSource(srv.URL+"/categories", srv.URL+"/foods", 2*time.Second, 0))
	require.NoError(t, err)
	assert.Equal(t, 2, data.Catalog.Len())
	assert.Equal(t, 1, data.Foods.Len())

	_, err = Load(context.Background(), NewHTTPSource(srv.URL+"/categories", srv.URL+"/missing", 2*time.Second, 0))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status 404")
}

func TestSQLiteSourceRoundTrip(t *testing.T) {
	ctx := context.Background()
	seed := NewEmbeddedSource()
	records, err := seed.Categories(ctx)
	require.NoError(t, err)
	items, err := seed.Foods(ctx)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "reference.db")
	src, err := OpenSQLiteSource(path)
	require.NoError(t, err)
	defer src.Close()

	require.NoError(t, src.Import(ctx, records, items))

	data, err := Load(ctx, src)
	require.NoError(t, err)
	assert.Equal(t, len(records), data.Catalog.Len())
	assert.Equal(t, len(items), data.Foods.Len())
	assert.Equal(t, records[0].SubLabel, data.Catalog.All()[0].SubLabel)
	assert.Equal(t, records[0].RecommendedFoods, data.Catalog.All()[0].RecommendedFoods)

	ghee, ok := data.Foods.Get("ghee")
	require.True(t, ok)
	assert.Equal(t, 108.0, ghee.Nutrients.Vitamins["A"])
	assert.Equal(t, food.Cooling, ghee.Properties.Virya)

	// 重複匯入會取代內容
	require.NoError(t, src.Import(ctx, records[:1], items[:1]))
	data, err = Load(ctx, src)
	require.NoError(t, err)
	assert.Equal(t, 1, data.Catalog.Len())
}

type failingSource struct{}

func (failingSource) Name() string { return "failing" }
func (failingSource) Categories(ctx context.Context) ([]catalog.Record, error) {
	return nil, errors.New("boom")
}
func (failingSource) Foods(ctx context.Context) ([]food.Item, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func TestLoadCancelsOnFailure(t *testing.T) {
	_, err := Load(context.Background(), failingSource{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
}

func TestNewSource(t *testing.T) {
	src, closer, err := NewSource(config.ReferenceConfig{Source: config.SourceEmbedded})
	require.NoError(t, err)
	assert.Equal(t, "embedded", src.Name())
	assert.NoError(t, closer())

	src, closer, err = NewSource(config.ReferenceConfig{Source: config.SourceSQLite, SQLitePath: filepath.Join(t.TempDir(), "x.db")})
	require.NoError(t, err)
	assert.Equal(t, "sqlite", src.Name())
	assert.NoError(t, closer())

	_, _, err = NewSource(config.ReferenceConfig{Source: "ftp"})
	assert.Error(t, err)
}
