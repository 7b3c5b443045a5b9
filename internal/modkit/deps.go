package modkit

import (
	"confmatrix/internal/modkit/repokit"
	"confmatrix/internal/platform/config"
	"confmatrix/internal/platform/logger"
	"confmatrix/internal/platform/store"
)

// Deps holds the shared dependencies handed to every module
// PG and CH are nil when their backends are not configured
type Deps struct {
	Log logger.Logger
	Cfg config.Conf
	PG  repokit.TxRunner
	CH  store.Clickhouse
}

// FromStore builds Deps around an opened store, which may be nil
func FromStore(cfg config.Conf, log logger.Logger, st *store.Store) Deps {
	d := Deps{Log: log, Cfg: cfg}
	if st != nil {
		d.PG = st.PG
		d.CH = st.CH
	}
	return d
}
