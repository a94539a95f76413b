package entity

// Handle - слабая ссылка на врага: индекс слота и его поколение.
// Нулевой Handle ни на что не указывает.
type Handle struct {
	Index uint32
	Gen   uint32
}

// Valid сообщает, задана ли ссылка.
func (h Handle) Valid() bool { return h.Gen != 0 }

type slot struct {
	gen   uint32
	alive bool
	enemy Enemy
}

// Registry владеет врагами и турелями. Не потокобезопасен:
// доступ сериализует владелец сессии.
type Registry struct {
	slots   []slot
	free    []uint32
	live    int
	turrets []*Turret
}

// NewRegistry создаёт пустой реестр.
func NewRegistry() *Registry {
	return &Registry{}
}

// Spawn добавляет врага и возвращает ссылку на него.
func (r *Registry) Spawn(e Enemy) Handle {
	r.live++
	if n := len(r.free); n > 0 {
		idx := r.free[n-1]
		r.free = r.free[:n-1]
		s := &r.slots[idx]
		s.alive = true
		s.enemy = e
		return Handle{Index: idx, Gen: s.gen}
	}
	r.slots = append(r.slots, slot{gen: 1, alive: true, enemy: e})
	return Handle{Index: uint32(len(r.slots) - 1), Gen: 1}
}

// Enemy разрешает ссылку. Устаревшая ссылка даёт nil, false.
func (r *Registry) Enemy(h Handle) (*Enemy, bool) {
	if !h.Valid() || int(h.Index) >= len(r.slots) {
		return nil, false
	}
	s := &r.slots[h.Index]
	if !s.alive || s.gen != h.Gen {
		return nil, false
	}
	return &s.enemy, true
}

// Despawn удаляет врага. Все ссылки на него становятся устаревшими.
func (r *Registry) Despawn(h Handle) bool {
	if _, ok := r.Enemy(h); !ok {
		return false
	}
	s := &r.slots[h.Index]
	s.alive = false
	s.enemy = Enemy{}
	s.gen++
	r.free = append(r.free, h.Index)
	r.live--
	return true
}

// Each обходит живых врагов в порядке слотов, пока fn возвращает true.
// Внутри fn врага можно удалить через Despawn.
func (r *Registry) Each(fn func(h Handle, e *Enemy) bool) {
	for i := range r.slots {
		s := &r.slots[i]
		if !s.alive {
			continue
		}
		if !fn(Handle{Index: uint32(i), Gen: s.gen}, &s.enemy) {
			return
		}
	}
}

// Len возвращает число живых врагов.
func (r *Registry) Len() int { return r.live }

// Enemies возвращает копии всех живых врагов.
func (r *Registry) Enemies() []Enemy {
	out := make([]Enemy, 0, r.live)
	r.Each(func(_ Handle, e *Enemy) bool {
		out = append(out, *e)
		return true
	})
	return out
}

// PlaceTurret добавляет турель. Турели не удаляются до конца сессии.
func (r *Registry) PlaceTurret(t *Turret) {
	r.turrets = append(r.turrets, t)
}

// Turrets возвращает поставленные турели.
func (r *Registry) Turrets() []*Turret { return r.turrets }

// Reset удаляет всех врагов и турели.
func (r *Registry) Reset() {
	r.slots = nil
	r.free = nil
	r.live = 0
	r.turrets = nil
}
