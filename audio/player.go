package audio

import (
	"log"
	"sync"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/phosphor/parameter"
	"github.com/lixenwraith/phosphor/sequence"
)

// Player plays cues live on the speaker while frames are produced
// Every method is safe to call without a working audio device
type Player struct {
	mu          sync.Mutex
	cfg         *Config
	mixer       *beep.Mixer
	initialized bool
}

// NewPlayer creates a player; call Initialize before frames arrive
func NewPlayer(cfg *Config) *Player {
	return &Player{
		cfg:   cfg,
		mixer: &beep.Mixer{},
	}
}

// Initialize opens the speaker and starts the mixer
func (p *Player) Initialize() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}

	rate := p.cfg.Rate()
	if err := speaker.Init(rate, rate.N(parameter.AudioBufferDuration)); err != nil {
		return err
	}

	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

// IsInitialized reports whether the speaker is open
func (p *Player) IsInitialized() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.initialized
}

// OnFrame implements sequence.Observer
func (p *Player) OnFrame(ev sequence.FrameEvent) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	for _, s := range cuesFor(ev) {
		if sound := GetSoundEffect(s, p.cfg); sound != nil {
			speaker.Lock()
			p.mixer.Add(sound)
			speaker.Unlock()
		}
	}
}

// Cleanup stops all sounds
func (p *Player) Cleanup() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}

	speaker.Clear()
	p.initialized = false
	log.Printf("Audio player stopped")
}
