package booking

import "github.com/villidata/newfork/pkg/dbmetrics"

// DBExecutor is the database handle the repository runs on: the raw pool,
// or the metrics wrapper around it.
type DBExecutor = dbmetrics.Executor
