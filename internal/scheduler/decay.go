package scheduler

import (
	"context"
	"time"

	"virtual-pet-service/internal/platform/logger"
)

// DefaultInterval es el período entre pasadas de decaimiento si no se
// configura DECAY_INTERVAL.
const DefaultInterval = 10 * time.Minute

// DecayRunner es lo que el scheduler necesita del servicio de mascotas.
type DecayRunner interface {
	RunDecayPass(ctx context.Context) (int, error)
}

// Decay aplica el decaimiento pasivo a todas las mascotas activas en
// intervalos fijos. No sabe nada de vitales ni de reglas: solo dispara
// la pasada y reporta el resultado.
type Decay struct {
	svc      DecayRunner
	interval time.Duration
	log      logger.Logger
	stopChan chan struct{}
}

func NewDecay(svc DecayRunner, interval time.Duration, log logger.Logger) *Decay {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Decay{
		svc:      svc,
		interval: interval,
		log:      log,
		stopChan: make(chan struct{}),
	}
}

// Start corre el loop hasta que el contexto se cancele. Llamar en goroutine.
func (d *Decay) Start(ctx context.Context) {
	d.log.Info("scheduler de decaimiento iniciado", map[string]any{"interval": d.interval.String()})

	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			d.log.Info("scheduler de decaimiento detenido por contexto", nil)
			return
		case <-d.stopChan:
			d.log.Info("scheduler de decaimiento detenido", nil)
			return
		case <-ticker.C:
			d.runOnce(ctx)
		}
	}
}

// Stop corta el loop manualmente.
func (d *Decay) Stop() {
	close(d.stopChan)
}

func (d *Decay) runOnce(ctx context.Context) {
	n, err := d.svc.RunDecayPass(ctx)
	if err != nil {
		// errores por mascota ya fueron tolerados; esto es fallo de listado
		d.log.Error("pasada de decaimiento fallida", map[string]any{"err": err.Error()})
		return
	}
	d.log.Debug("pasada de decaimiento completada", map[string]any{"pets": n})
}
