package loot

import (
	"github.com/annelo/nightfall/internal/entity"
	"github.com/annelo/nightfall/internal/rng"
	"github.com/annelo/nightfall/internal/weapon"
)

// OfferWindow - сколько секунд предложение можно подтвердить
const OfferWindow float32 = 5

// Offer - временное предложение заменить оружие или турель в руках.
// Просроченное предложение не удаляется, просто не может быть подтверждено.
type Offer struct {
	Kind    Kind
	Spec    weapon.Spec
	At      float32
	Pending bool
}

// Usable сообщает, можно ли подтвердить предложение в момент now.
func (o Offer) Usable(now float32) bool {
	return o.Pending && now-o.At <= OfferWindow
}

// Offers - по одному слоту предложений на категорию
type Offers struct {
	Weapon Offer
	Turret Offer
}

// Outcome описывает результат открытия сундука
type Outcome struct {
	Energy        int32
	WeaponOffered *weapon.Spec
	TurretGranted *weapon.Spec
	TurretOffered *weapon.Spec
}

// Apply применяет предметы к игроку. Энергия ограничена LootEnergyCap.
// Оружие всегда становится предложением. Турель сразу попадает в руки,
// если они пусты, иначе становится предложением. Новое предложение заменяет старое.
func (o *Offers) Apply(items []Item, p *entity.Player, now float32, src rng.Source) Outcome {
	var out Outcome
	for _, it := range items {
		switch it.Kind {
		case KindEnergy:
			before := p.Energy
			p.SetEnergy(p.Energy+int32(it.Count), entity.LootEnergyCap)
			out.Energy += p.Energy - before

		case KindWeapon:
			spec := weapon.Pick(src)
			o.Weapon = Offer{Kind: KindWeapon, Spec: spec, At: now, Pending: true}
			out.WeaponOffered = &spec

		case KindTurret:
			spec := weapon.Pick(src)
			if p.Inventory.TurretInHand == nil {
				p.HoldTurret(spec)
				out.TurretGranted = &spec
				continue
			}
			o.Turret = Offer{Kind: KindTurret, Spec: spec, At: now, Pending: true}
			out.TurretOffered = &spec
		}
	}
	return out
}

// Confirm принимает самое свежее из действующих предложений.
// Оружие заменяет текущее оружие игрока, турель заменяет турель в руках.
func (o *Offers) Confirm(p *entity.Player, now float32) (Offer, bool) {
	var pick *Offer
	for _, c := range []*Offer{&o.Weapon, &o.Turret} {
		if c.Usable(now) && (pick == nil || c.At > pick.At) {
			pick = c
		}
	}
	if pick == nil {
		return Offer{}, false
	}

	switch pick.Kind {
	case KindWeapon:
		p.Weapon = weapon.New(pick.Spec)
	case KindTurret:
		p.HoldTurret(pick.Spec)
	}
	pick.Pending = false
	return *pick, true
}

// Reset очищает оба слота
func (o *Offers) Reset() { *o = Offers{} }
