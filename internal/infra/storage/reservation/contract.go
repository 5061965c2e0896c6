package reservation

import (
	"github.com/kairovix/labsched/pkg/dbmetrics"
)

// Reuse the dbmetrics executor interface so the repository runs identically
// on *sql.DB, a metric-wrapped DB, or an open transaction from the context.
type DBExecutor = dbmetrics.DBExecutor
