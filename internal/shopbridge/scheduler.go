package shopbridge

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/prodflux/prodflux-api/pkg/logger"
)

// Service worker de refresco de la caché de pedidos. Un solo goroutine
// consume el canal de disparo, de modo que nunca corren dos refrescos a la
// vez; el canal tiene buffer 1 para que un disparo durante un refresco en
// curso encole exactamente uno más y los siguientes se descarten.
type Service struct {
	fetcher  Fetcher
	cache    *Cache
	log      *logger.Logger
	interval time.Duration

	cron    *cron.Cron
	trigger chan struct{}
	quit    chan struct{}
	done    chan struct{}
}

// Status estado del puente para el endpoint de diagnóstico.
type Status struct {
	OrderCount  int       `json:"order_count"`
	RefreshedAt time.Time `json:"refreshed_at"`
	LastError   string    `json:"last_error,omitempty"`
	Interval    string    `json:"interval"`
}

// NewService construye el servicio sin arrancarlo.
func NewService(fetcher Fetcher, interval time.Duration, log *logger.Logger) *Service {
	return &Service{
		fetcher:  fetcher,
		cache:    NewCache(),
		log:      log,
		interval: interval,
		trigger:  make(chan struct{}, 1),
		quit:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start lanza el worker, programa el refresco periódico y dispara el primero.
func (s *Service) Start() error {
	go s.loop()

	s.cron = cron.New()
	spec := fmt.Sprintf("@every %s", s.interval)
	if _, err := s.cron.AddFunc(spec, func() { s.TriggerRefresh() }); err != nil {
		return fmt.Errorf("schedule shop refresh: %w", err)
	}
	s.cron.Start()

	s.TriggerRefresh()
	s.log.Info().Str("interval", s.interval.String()).Msg("shopbridge iniciado")
	return nil
}

// Stop detiene el cron y espera a que el worker termine el refresco en curso.
func (s *Service) Stop() {
	if s.cron != nil {
		<-s.cron.Stop().Done()
	}
	close(s.quit)
	<-s.done
}

// TriggerRefresh encola un refresco manual. Devuelve false si ya había uno
// encolado.
func (s *Service) TriggerRefresh() bool {
	select {
	case s.trigger <- struct{}{}:
		return true
	default:
		return false
	}
}

// Snapshot estado actual de la caché.
func (s *Service) Snapshot() Snapshot {
	return s.cache.Get()
}

// Status resumen para diagnóstico.
func (s *Service) Status() Status {
	snap := s.cache.Get()
	return Status{
		OrderCount:  len(snap.Orders),
		RefreshedAt: snap.RefreshedAt,
		LastError:   snap.LastError,
		Interval:    s.interval.String(),
	}
}

func (s *Service) loop() {
	defer close(s.done)
	for {
		select {
		case <-s.quit:
			return
		case <-s.trigger:
			s.refresh()
		}
	}
}

func (s *Service) refresh() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	orders, err := s.fetcher.FetchOrders(ctx)
	if err != nil {
		s.cache.SetError(err)
		s.log.Warn().Err(err).Msg("refresco de pedidos de tienda falló")
		return
	}
	s.cache.SetOrders(orders, time.Now())
	s.log.Debug().Int("orders", len(orders)).Msg("caché de pedidos de tienda refrescada")
}
