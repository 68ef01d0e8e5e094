package pets

import "time"

// engine.go contiene las transiciones de estado puras de la mascota.
// Todas son funciones totales (Pet, now) -> Pet: sin I/O, sin reloj global,
// sin errores. La serialización por mascota es responsabilidad del repo.

const (
	minVital = 0
	maxVital = 100

	// Umbrales del clasificador de status.
	sickHealthBelow    = 30
	sleepyEnergyBelow  = 20
	hungryHungerBelow  = 30
	happyHappinessOver = 80
	happyHealthOver    = 80
	happyEnergyOver    = 60

	// Sleep tiene su propio corte, no usa el clasificador general.
	sleepAwakeEnergyOver = 80

	// Deltas de las acciones.
	feedHungerGain    = 30
	feedHappinessGain = 10
	feedExperience    = 10

	playHappinessGain = 25
	playEnergyCost    = 20
	playHungerCost    = 15
	playExperience    = 15

	sleepEnergyGain = 40
	sleepHealthGain = 10

	healHealthGain = 30

	// Tasas de decaimiento pasivo, por hora transcurrida.
	hungerDecayPerHour    = 2.0
	happinessDecayPerHour = 1.5
	energyDecayPerHour    = 1.0

	expPerLevel = 100
)

// statusRule es un par (predicado, etiqueta). El clasificador evalúa las
// reglas en orden fijo y gana la primera que matchea.
type statusRule struct {
	match  func(health, hunger, happiness, energy int) bool
	status Status
}

// El orden es una decisión de diseño, no es arbitrario: la enfermedad
// pre-empta al cansancio, el cansancio al hambre, y el hambre al "happy".
// Reordenar cambia el comportamiento observable cuando una mascota cumple
// varias condiciones a la vez.
var statusRules = []statusRule{
	{
		match:  func(health, _, _, _ int) bool { return health < sickHealthBelow },
		status: StatusSick,
	},
	{
		match:  func(_, _, _, energy int) bool { return energy < sleepyEnergyBelow },
		status: StatusSleeping,
	},
	{
		match:  func(_, hunger, _, _ int) bool { return hunger < hungryHungerBelow },
		status: StatusHungry,
	},
	{
		match: func(health, _, happiness, energy int) bool {
			return happiness > happyHappinessOver && health > happyHealthOver && energy > happyEnergyOver
		},
		status: StatusHappy,
	},
}

// ClassifyStatus deriva la etiqueta de status desde los cuatro vitales.
// Función pura; siempre se invoca como último paso de cada transición.
func ClassifyStatus(health, hunger, happiness, energy int) Status {
	for _, r := range statusRules {
		if r.match(health, hunger, happiness, energy) {
			return r.status
		}
	}
	return StatusActive
}

// LevelFor calcula el nivel derivado de la experiencia: floor(exp/100)+1.
func LevelFor(experience int) int {
	if experience < 0 {
		experience = 0
	}
	return experience/expPerLevel + 1
}

// Feed aplica la acción de alimentar y devuelve el registro resultante.
func Feed(p Pet, now time.Time) Pet {
	p = Normalize(p)
	p.Hunger = clampVital(p.Hunger + feedHungerGain)
	p.Happiness = clampVital(p.Happiness + feedHappinessGain)
	p.Experience += feedExperience
	p.Level = LevelFor(p.Experience)
	p.Status = ClassifyStatus(p.Health, p.Hunger, p.Happiness, p.Energy)
	p.LastFed = now
	p.UpdatedAt = now
	return p
}

// Play aplica la acción de jugar: sube felicidad, gasta energía y hambre.
func Play(p Pet, now time.Time) Pet {
	p = Normalize(p)
	p.Happiness = clampVital(p.Happiness + playHappinessGain)
	p.Energy = clampVital(p.Energy - playEnergyCost)
	p.Hunger = clampVital(p.Hunger - playHungerCost)
	p.Experience += playExperience
	p.Level = LevelFor(p.Experience)
	p.Status = ClassifyStatus(p.Health, p.Hunger, p.Happiness, p.Energy)
	p.LastPlayed = now
	p.UpdatedAt = now
	return p
}

// Sleep aplica la acción de dormir. El status acá NO usa el clasificador
// general: dormir siempre deja exactamente "active" o "sleeping", sin
// importar hambre/felicidad/salud. Override intencional.
func Sleep(p Pet, now time.Time) Pet {
	p = Normalize(p)
	p.Energy = clampVital(p.Energy + sleepEnergyGain)
	p.Health = clampVital(p.Health + sleepHealthGain)
	if p.Energy > sleepAwakeEnergyOver {
		p.Status = StatusActive
	} else {
		p.Status = StatusSleeping
	}
	p.LastSlept = now
	p.UpdatedAt = now
	return p
}

// Heal aplica la acción de curar. No toca experiencia, nivel ni timestamps
// de acciones.
func Heal(p Pet, now time.Time) Pet {
	p = Normalize(p)
	p.Health = clampVital(p.Health + healHealthGain)
	p.Status = ClassifyStatus(p.Health, p.Hunger, p.Happiness, p.Energy)
	p.UpdatedAt = now
	return p
}

// Decay aplica el decaimiento pasivo desde tres bases de tiempo
// independientes, medidas contra los timestamps de la propia mascota.
// Health no decae. Los timestamps de acción solo se leen, nunca se escriben.
func Decay(p Pet, now time.Time) Pet {
	p = Normalize(p)
	p.Hunger = clampVital(p.Hunger - decayAmount(p.LastFed, now, hungerDecayPerHour))
	p.Happiness = clampVital(p.Happiness - decayAmount(p.LastPlayed, now, happinessDecayPerHour))
	p.Energy = clampVital(p.Energy - decayAmount(p.LastSlept, now, energyDecayPerHour))
	p.Status = ClassifyStatus(p.Health, p.Hunger, p.Happiness, p.Energy)
	p.UpdatedAt = now
	return p
}

// Normalize clampa defensivamente un registro leído de storage y recalcula
// el nivel. El clamping del engine solo garantiza postcondiciones sobre sus
// propias salidas; datos editados a mano o corruptos se sanean al entrar.
func Normalize(p Pet) Pet {
	p.Health = clampVital(p.Health)
	p.Hunger = clampVital(p.Hunger)
	p.Happiness = clampVital(p.Happiness)
	p.Energy = clampVital(p.Energy)
	if p.Experience < 0 {
		p.Experience = 0
	}
	p.Level = LevelFor(p.Experience)
	return p
}

// decayAmount = floor(horas transcurridas × tasa). Con reloj corrido hacia
// atrás (skew) se trata como cero horas.
func decayAmount(since, now time.Time, ratePerHour float64) int {
	if since.IsZero() {
		return 0
	}
	hours := now.Sub(since).Hours()
	if hours < 0 {
		hours = 0
	}
	return int(hours * ratePerHour)
}

func clampVital(v int) int {
	if v < minVital {
		return minVital
	}
	if v > maxVital {
		return maxVital
	}
	return v
}
