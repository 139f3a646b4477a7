package core

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/timzifer/guarded_queue/internal/telemetry"
)

// Resource beschreibt eine exklusiv sperrbare Ressource.
//
// Acquire liefert eine Release-Funktion, sobald die Ressource exklusiv
// gehalten wird. Der Orchestrator sperrt alle Ressourcen in
// Registrierungsreihenfolge; bei Fehlern oder Kontextabbruch werden bereits
// gehaltene Ressourcen in umgekehrter Reihenfolge freigegeben.
type Resource interface {
	Acquire(ctx context.Context) (release func(), err error)
}

// ErrNilResource wird bei der Registrierung einer nil-Ressource zurückgegeben.
var ErrNilResource = errors.New("nil resource")

// LockOrchestrator serialisiert Mehrfachsperren über alle bekannten Ressourcen.
type LockOrchestrator struct {
	mu        sync.Mutex
	resources []Resource
	rounds    atomic.Uint64
}

type acquireObserverKey struct{}

// WithAcquireObserver returns a context that notifies observer about the final
// outcome of WithAll. On success the observer is invoked immediately before the
// critical section runs; on failure it is invoked before the error is returned
// to the caller.
func WithAcquireObserver(ctx context.Context, observer func(error)) context.Context {
	if observer == nil {
		return ctx
	}
	return context.WithValue(ctx, acquireObserverKey{}, observer)
}

// NewLockOrchestrator erzeugt einen neuen Orchestrator.
func NewLockOrchestrator(resources ...Resource) *LockOrchestrator {
	copyResources := append([]Resource(nil), resources...)
	return &LockOrchestrator{resources: copyResources}
}

// WithAll sperrt alle Ressourcen und führt fn innerhalb der globalen
// kritischen Sektion aus.
func (o *LockOrchestrator) WithAll(ctx context.Context, fn func() error) (err error) {
	ctx, finish := telemetry.TraceBatch(ctx)
	defer func() { finish(err) }()

	observer, _ := ctx.Value(acquireObserverKey{}).(func(error))

	o.mu.Lock()
	defer o.mu.Unlock()

	releases := make([]func(), 0, len(o.resources))

	for _, resource := range o.resources {
		if err = ctx.Err(); err != nil {
			break
		}
		var release func()
		release, err = resource.Acquire(ctx)
		if err != nil {
			break
		}
		if release == nil {
			release = func() {}
		}
		releases = append(releases, release)
	}

	if err == nil {
		err = ctx.Err()
	}
	if err != nil {
		for i := len(releases) - 1; i >= 0; i-- {
			releases[i]()
		}
		if observer != nil {
			observer(err)
		}
		return err
	}

	if observer != nil {
		observer(nil)
	}

	if fn != nil {
		err = fn()
	}

	for i := len(releases) - 1; i >= 0; i-- {
		releases[i]()
	}

	if err == nil {
		o.rounds.Add(1)
	}
	return err
}

// Rounds gibt die Anzahl der erfolgreich abgeschlossenen Sektionen zurück.
func (o *LockOrchestrator) Rounds() uint64 {
	return o.rounds.Load()
}

// Register hängt zur Laufzeit eine weitere Ressource an.
func (o *LockOrchestrator) Register(resource Resource) error {
	if resource == nil {
		return ErrNilResource
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	o.resources = append(o.resources, resource)
	return nil
}
