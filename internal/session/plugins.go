package session

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/annelo/nightfall/internal/gameloop"
	"github.com/annelo/nightfall/internal/plugin"
)

// pluginSystems выполняет системы из реестра после основного конвейера.
// Системы, добавленные при перезагрузке плагинов, инициализируются при первом тике.
type pluginSystems struct {
	reg    plugin.PluginRegistry
	deps   gameloop.Dependencies
	log    *zap.SugaredLogger
	inited map[gameloop.System]error
}

func newPluginSystems(reg plugin.PluginRegistry, log *zap.SugaredLogger) *pluginSystems {
	return &pluginSystems{reg: reg, log: log, inited: make(map[gameloop.System]error)}
}

func (p *pluginSystems) Name() string { return "plugins" }

func (p *pluginSystems) Init(deps gameloop.Dependencies) error {
	p.deps = deps
	return nil
}

func (p *pluginSystems) Tick(ctx context.Context, dt time.Duration) {
	for _, sys := range p.reg.GameSystems() {
		err, seen := p.inited[sys]
		if !seen {
			err = sys.Init(p.deps)
			p.inited[sys] = err
			if err != nil {
				p.log.Errorw("plugin system init failed", "system", sys.Name(), "err", err)
			}
		}
		if err != nil {
			continue
		}
		p.tick(ctx, sys, dt)
	}
}

func (p *pluginSystems) tick(ctx context.Context, sys gameloop.System, dt time.Duration) {
	defer func() {
		if r := recover(); r != nil {
			p.log.Errorw("panic in plugin system", "system", sys.Name(), "panic", r)
		}
	}()
	sys.Tick(ctx, dt)
}
