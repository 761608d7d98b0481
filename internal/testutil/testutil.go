package testutil

import (
	"strings"
	"testing"

	"github.com/rohits-web03/robofriends/internal/models"
	"github.com/rohits-web03/robofriends/internal/repositories"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// OpenInMemoryDB opens a migrated in-memory SQLite store private to the test.
// The database is closed via t.Cleanup.
func OpenInMemoryDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := repositories.ConnectDatabase("sqlite:file:"+name+"?mode=memory&cache=shared", zap.NewNop())
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { _ = repositories.Close(db) })
	return db
}

// NewRobot returns a complete create input whose unique fields derive from key.
func NewRobot(key string) models.NewRobot {
	return models.NewRobot{
		Name:      "Robot " + key,
		Username:  "user-" + key,
		Email:     key + "@robofriends.test",
		Phone:     "555-" + key,
		Image:     "https://robohash.org/Robot" + key + ".png?set=set1",
		StyleType: string(models.StyleRobots),
	}
}
