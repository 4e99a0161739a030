package viewmodel

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/i474232898/clima/internal/weather"
)

// WeatherFetcher looks up the current weather for a city.
type WeatherFetcher interface {
	Current(ctx context.Context, city string) (weather.Reading, error)
}

// HistoryRecorder reports a successful lookup to the history service.
type HistoryRecorder interface {
	Record(ctx context.Context, city string) error
}

// State is what the UI renders.
type State struct {
	City    string           `json:"ciudad"`
	Reading *weather.Reading `json:"clima,omitempty"`
	Loading bool             `json:"cargando"`
	Error   bool             `json:"error"`
}

// Icon returns the icon for the displayed reading, or "" when there is none.
func (s State) Icon() string {
	if s.Reading == nil {
		return ""
	}
	return s.Reading.Icon()
}

// RecordResult is the outcome of one detached history recording.
type RecordResult struct {
	City     string
	Err      error
	Duration time.Duration
}

// Option customizes a ViewModel.
type Option func(*ViewModel)

// WithFetchTimeout bounds each weather lookup.
func WithFetchTimeout(d time.Duration) Option {
	return func(vm *ViewModel) { vm.fetchTimeout = d }
}

// WithRecordTimeout bounds each history recording.
func WithRecordTimeout(d time.Duration) Option {
	return func(vm *ViewModel) { vm.recordTimeout = d }
}

// WithRecordHook registers fn to receive every RecordResult after it is logged.
func WithRecordHook(fn func(RecordResult)) Option {
	return func(vm *ViewModel) { vm.onRecord = fn }
}

// ViewModel owns the UI state and drives fetch cycles.
//
// Every fetch cycle runs to completion; a newer SetCity does not abort an
// older one. Whichever cycle resolves last decides the displayed reading.
type ViewModel struct {
	fetcher  WeatherFetcher
	recorder HistoryRecorder

	fetchTimeout  time.Duration
	recordTimeout time.Duration
	onRecord      func(RecordResult)

	mu     sync.RWMutex
	state  State
	closed bool

	// in-flight fetch cycles and record tasks
	wg     sync.WaitGroup
	ctx    context.Context
	cancel context.CancelFunc
}

// New creates a ViewModel showing defaultCity. No I/O happens until Start or SetCity.
func New(fetcher WeatherFetcher, recorder HistoryRecorder, defaultCity string, opts ...Option) *ViewModel {
	ctx, cancel := context.WithCancel(context.Background())
	vm := &ViewModel{
		fetcher:       fetcher,
		recorder:      recorder,
		fetchTimeout:  10 * time.Second,
		recordTimeout: 10 * time.Second,
		state: State{
			City:    defaultCity,
			Loading: true,
		},
		ctx:    ctx,
		cancel: cancel,
	}
	for _, opt := range opts {
		opt(vm)
	}
	return vm
}

// Start issues the first fetch cycle for the default city.
func (vm *ViewModel) Start() {
	vm.mu.RLock()
	city := vm.state.City
	vm.mu.RUnlock()

	vm.spawn(func() { vm.fetch(vm.ctx, city) })
}

// SetCity selects name and starts a fetch cycle for it in the background.
func (vm *ViewModel) SetCity(name string) {
	vm.mu.Lock()
	if vm.closed {
		vm.mu.Unlock()
		return
	}
	vm.state.City = name
	vm.mu.Unlock()

	vm.spawn(func() { vm.fetch(vm.ctx, name) })
}

// FetchWeather runs one fetch cycle for the selected city and returns when
// it has resolved.
func (vm *ViewModel) FetchWeather(ctx context.Context) {
	if !vm.acquire() {
		return
	}
	defer vm.wg.Done()

	vm.mu.RLock()
	city := vm.state.City
	vm.mu.RUnlock()

	vm.fetch(ctx, city)
}

// State returns a copy of the current state.
func (vm *ViewModel) State() State {
	vm.mu.RLock()
	defer vm.mu.RUnlock()

	s := vm.state
	if s.Reading != nil {
		r := *s.Reading
		s.Reading = &r
	}
	return s
}

// Icon returns the icon for the displayed reading.
func (vm *ViewModel) Icon() string {
	return vm.State().Icon()
}

// Wait blocks until every background fetch cycle and record task has finished.
func (vm *ViewModel) Wait() {
	vm.wg.Wait()
}

// Close stops accepting new cycles and waits for in-flight work. If ctx
// expires first, outstanding work is cancelled.
func (vm *ViewModel) Close(ctx context.Context) error {
	vm.mu.Lock()
	vm.closed = true
	vm.mu.Unlock()
	defer vm.cancel()

	done := make(chan struct{})
	go func() {
		vm.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		vm.cancel()
		<-done
		return ctx.Err()
	}
}

func (vm *ViewModel) fetch(ctx context.Context, city string) {
	vm.mu.Lock()
	vm.state.Loading = true
	vm.state.Error = false
	vm.mu.Unlock()

	defer func() {
		vm.mu.Lock()
		vm.state.Loading = false
		vm.mu.Unlock()
	}()

	fetchCtx, cancel := context.WithTimeout(ctx, vm.fetchTimeout)
	defer cancel()

	reading, err := vm.fetcher.Current(fetchCtx, city)

	vm.mu.Lock()
	if err != nil {
		vm.state.Reading = nil
		vm.state.Error = true
	} else {
		vm.state.Reading = &reading
	}
	vm.mu.Unlock()

	if err != nil {
		log.Printf("ERROR: weather lookup for %q failed: %v", city, err)
		return
	}

	// The enclosing cycle still holds the group, so this Add cannot race Close.
	vm.wg.Add(1)
	go func() {
		defer vm.wg.Done()
		vm.record(city)
	}()
}

func (vm *ViewModel) record(city string) {
	ctx, cancel := context.WithTimeout(vm.ctx, vm.recordTimeout)
	defer cancel()

	start := time.Now()
	res := RecordResult{City: city}
	res.Err = vm.recorder.Record(ctx, city)
	res.Duration = time.Since(start)

	if res.Err != nil {
		log.Printf("ERROR: failed to record %q in history: %v", city, res.Err)
	} else {
		log.Printf("INFO: recorded %q in history in %v", city, res.Duration)
	}

	if vm.onRecord != nil {
		vm.onRecord(res)
	}
}

// acquire registers one unit of in-flight work, failing once closed.
func (vm *ViewModel) acquire() bool {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	if vm.closed {
		return false
	}
	vm.wg.Add(1)
	return true
}

// spawn runs fn on its own goroutine unless the view-model is closed.
func (vm *ViewModel) spawn(fn func()) {
	if !vm.acquire() {
		return
	}
	go func() {
		defer vm.wg.Done()
		fn()
	}()
}
