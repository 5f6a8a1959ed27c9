package database

import (
	"fmt"

	"github.com/playea/beach-api/pkg/logger"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// RankingViewSQL defines beaches_grades: every beach with the average of its
// review ratings. Beaches without reviews have a NULL grade.
const RankingViewSQL = `CREATE OR REPLACE VIEW beaches_grades AS
SELECT b.id AS beach_id,
       b.slug,
       b.name,
       b.island,
       b.municipality,
       b.cover_url,
       ROUND(AVG(r.rating)::numeric, 2)::float8 AS grade,
       COUNT(r.id) AS reviews_count
FROM beaches b
LEFT JOIN reviews r ON r.beach_id = b.id
GROUP BY b.id`

// beachIndexes back the filterable columns of the beach list endpoints.
// Substring filters use trigram indexes when pg_trgm is available.
var beachIndexes = []string{
	"CREATE INDEX IF NOT EXISTS idx_beaches_island ON beaches(island);",
	"CREATE INDEX IF NOT EXISTS idx_beaches_municipality ON beaches(municipality);",
	"CREATE INDEX IF NOT EXISTS idx_beaches_classification ON beaches(classification);",
	"CREATE INDEX IF NOT EXISTS idx_beaches_blue_flag ON beaches(blue_flag) WHERE blue_flag = true;",
	"CREATE INDEX IF NOT EXISTS idx_beaches_name_lower ON beaches(lower(name));",
}

var trigramIndexes = []string{
	"CREATE INDEX IF NOT EXISTS idx_beaches_name_trgm ON beaches USING GIN (name gin_trgm_ops);",
	"CREATE INDEX IF NOT EXISTS idx_beaches_island_trgm ON beaches USING GIN (island gin_trgm_ops);",
	"CREATE INDEX IF NOT EXISTS idx_reviews_comment_trgm ON reviews USING GIN (comment gin_trgm_ops);",
}

var sessionIndexes = []string{
	"CREATE INDEX IF NOT EXISTS idx_sessions_login_at ON sessions(login_at);",
	"CREATE INDEX IF NOT EXISTS idx_sessions_metadata_gin ON sessions USING GIN (metadata);",
}

// EnsureSchemaObjects creates what AutoMigrate cannot: the ranking view and
// secondary indexes. Index failures are logged and skipped.
func EnsureSchemaObjects(db *gorm.DB) error {
	log := logger.GetLogger()

	if err := db.Exec(RankingViewSQL).Error; err != nil {
		return fmt.Errorf("failed to create beaches_grades view: %w", err)
	}

	all := append([]string{}, beachIndexes...)
	all = append(all, sessionIndexes...)

	if err := db.Exec("CREATE EXTENSION IF NOT EXISTS pg_trgm;").Error; err != nil {
		log.Warn("pg_trgm unavailable, skipping trigram indexes", zap.Error(err))
	} else {
		all = append(all, trigramIndexes...)
	}

	created := 0
	for _, indexSQL := range all {
		if err := db.Exec(indexSQL).Error; err != nil {
			log.Warn("Failed to create index", zap.String("sql", indexSQL), zap.Error(err))
			continue
		}
		created++
	}

	for _, table := range []string{"beaches", "reviews", "favourites"} {
		if err := db.Exec("ANALYZE " + table + ";").Error; err != nil {
			log.Warn("Failed to analyze table", zap.String("table", table), zap.Error(err))
		}
	}

	log.Info("Schema objects ensured",
		zap.Int("indexes", created),
		zap.Int("indexes_total", len(all)),
	)
	return nil
}
