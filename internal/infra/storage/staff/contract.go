package staff

import "github.com/villidata/newfork/pkg/dbmetrics"

type DBExecutor = dbmetrics.Executor
