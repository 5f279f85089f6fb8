package storage

import (
	"errors"

	myErr "studenthub/internal/types/errors"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	storageOpsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cart_storage_operations_total",
			Help: "Total number of cart storage operations",
		},
		[]string{"op"},
	)

	storageErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cart_storage_errors_total",
			Help: "Total number of failed cart storage operations (misses are not errors)",
		},
		[]string{"op"},
	)
)

func init() {
	prometheus.MustRegister(storageOpsTotal, storageErrorsTotal)
}

// KV то, что умеет любое хранилище корзин
type KV interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
}

// Instrumented обертка, считающая операции и ошибки хранилища
type Instrumented struct {
	Next KV
}

func NewInstrumented(next KV) *Instrumented {
	return &Instrumented{
		Next: next,
	}
}

func (i *Instrumented) Get(key string) ([]byte, error) {
	storageOpsTotal.WithLabelValues("get").Inc()

	value, err := i.Next.Get(key)
	if err != nil && !errors.Is(err, myErr.ErrNotFound) {
		storageErrorsTotal.WithLabelValues("get").Inc()
	}

	return value, err
}

func (i *Instrumented) Set(key string, value []byte) error {
	storageOpsTotal.WithLabelValues("set").Inc()

	err := i.Next.Set(key, value)
	if err != nil {
		storageErrorsTotal.WithLabelValues("set").Inc()
	}

	return err
}
