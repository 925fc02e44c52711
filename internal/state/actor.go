package state

// Stats is the read-only view of whoever is performing an action. The tier
// scorer accepts any Stats, so an NPC can be the scoring actor while the
// player remains the effect target.
type Stats interface {
	SkillValue(name string) float64
	TraitValue(name string) int
	AptitudeValue(name string) float64
}

// Needs are the 0-100 scaled survival meters. Higher hunger/fatigue is
// worse; higher warmth/hygiene/mood is better.
type Needs struct {
	Hunger  int `json:"hunger"`
	Fatigue int `json:"fatigue"`
	Warmth  int `json:"warmth"`
	Hygiene int `json:"hygiene"`
	Mood    int `json:"mood"`
	Stress  int `json:"stress"`
	Energy  int `json:"energy"`
	Illness int `json:"illness"`
	Injury  int `json:"injury"`
	Health  int `json:"health"`
}

// Get returns a need by name, or (0, false) for an unknown name.
func (n *Needs) Get(name string) (int, bool) {
	switch name {
	case "hunger":
		return n.Hunger, true
	case "fatigue":
		return n.Fatigue, true
	case "warmth":
		return n.Warmth, true
	case "hygiene":
		return n.Hygiene, true
	case "mood":
		return n.Mood, true
	case "stress":
		return n.Stress, true
	case "energy":
		return n.Energy, true
	case "illness":
		return n.Illness, true
	case "injury":
		return n.Injury, true
	case "health":
		return n.Health, true
	}
	return 0, false
}

// Set writes a need by name, clamping to 0-100. Unknown names are ignored
// and reported via the return value.
func (n *Needs) Set(name string, value int) bool {
	v := Clamp100(value)
	switch name {
	case "hunger":
		n.Hunger = v
	case "fatigue":
		n.Fatigue = v
	case "warmth":
		n.Warmth = v
	case "hygiene":
		n.Hygiene = v
	case "mood":
		n.Mood = v
	case "stress":
		n.Stress = v
	case "energy":
		n.Energy = v
	case "illness":
		n.Illness = v
	case "injury":
		n.Injury = v
	case "health":
		n.Health = v
	default:
		return false
	}
	return true
}

// Apply adds a delta to a named need with clamping.
func (n *Needs) Apply(name string, delta int) bool {
	current, ok := n.Get(name)
	if !ok {
		return false
	}
	return n.Set(name, current+delta)
}

// Traits are slow-moving 0-100 personality modifiers.
type Traits struct {
	Discipline int `json:"discipline"`
	Confidence int `json:"confidence"`
	Frugality  int `json:"frugality"`
	Fitness    int `json:"fitness"`
	Curiosity  int `json:"curiosity"`
	Creativity int `json:"creativity"`
	Stoicism   int `json:"stoicism"`
	Charisma   int `json:"charisma"`
}

// Get returns a trait by name, or 0 for an unknown name.
func (t *Traits) Get(name string) int {
	switch name {
	case "discipline":
		return t.Discipline
	case "confidence":
		return t.Confidence
	case "frugality":
		return t.Frugality
	case "fitness":
		return t.Fitness
	case "curiosity":
		return t.Curiosity
	case "creativity":
		return t.Creativity
	case "stoicism":
		return t.Stoicism
	case "charisma":
		return t.Charisma
	}
	return 0
}

// Set writes a trait by name with clamping.
func (t *Traits) Set(name string, value int) bool {
	v := Clamp100(value)
	switch name {
	case "discipline":
		t.Discipline = v
	case "confidence":
		t.Confidence = v
	case "frugality":
		t.Frugality = v
	case "fitness":
		t.Fitness = v
	case "curiosity":
		t.Curiosity = v
	case "creativity":
		t.Creativity = v
	case "stoicism":
		t.Stoicism = v
	case "charisma":
		t.Charisma = v
	default:
		return false
	}
	return true
}

// Aptitudes are per-domain gain multipliers around 1.0. They move very
// slowly as the related skills are exercised.
type Aptitudes struct {
	Body        float64 `json:"body"`
	SocialGrace float64 `json:"social_grace"`
	LogicSystem float64 `json:"logic_systems"`
	Domesticity float64 `json:"domesticity"`
	Vitality    float64 `json:"vitality"`
}

// Get returns an aptitude by name, or 1.0 for an unknown name.
func (a *Aptitudes) Get(name string) float64 {
	switch name {
	case "body":
		return a.Body
	case "social_grace":
		return a.SocialGrace
	case "logic_systems":
		return a.LogicSystem
	case "domesticity":
		return a.Domesticity
	case "vitality":
		return a.Vitality
	}
	return 1.0
}

// Add bumps an aptitude by name.
func (a *Aptitudes) Add(name string, delta float64) {
	switch name {
	case "body":
		a.Body += delta
	case "social_grace":
		a.SocialGrace += delta
	case "logic_systems":
		a.LogicSystem += delta
	case "domesticity":
		a.Domesticity += delta
	case "vitality":
		a.Vitality += delta
	}
}

// Skill is a learnable ability with rust decay between uses.
type Skill struct {
	Value    float64 `json:"value"`
	RustRate float64 `json:"rust_rate"`
	LastTick int     `json:"last_tick"`
}

// SkillNames lists every skill in the system.
var SkillNames = []string{
	"cooking",
	"bartending",
	"technical_literacy",
	"analysis",
	"creativity",
	"resource_management",
	"presence",
	"articulation",
	"persuasion",
	"nutrition",
	"maintenance",
	"ergonomics",
	"reflexivity",
	"introspection",
	"focus",
}

// SkillToAptitude maps each skill to its governing aptitude.
var SkillToAptitude = map[string]string{
	"cooking":             "body",
	"bartending":          "social_grace",
	"technical_literacy":  "logic_systems",
	"analysis":            "logic_systems",
	"creativity":          "logic_systems",
	"resource_management": "logic_systems",
	"presence":            "social_grace",
	"articulation":        "social_grace",
	"persuasion":          "social_grace",
	"nutrition":           "domesticity",
	"maintenance":         "domesticity",
	"ergonomics":          "domesticity",
	"reflexivity":         "vitality",
	"introspection":       "vitality",
	"focus":               "vitality",
}

// MemoryEntry is one bounded interaction memory shared between social actors.
type MemoryEntry struct {
	Day       int    `json:"day"`
	ActionID  string `json:"action_id"`
	OtherID   string `json:"other_id"`
	Tier      int    `json:"tier"`
	Tag       string `json:"tag"`
	Initiator string `json:"initiator"`
}

// Player is the primary actor whose state the executor mutates.
type Player struct {
	MoneyPence    int               `json:"money_pence"`
	UtilitiesPaid bool              `json:"utilities_paid"`
	CarryCapacity int               `json:"carry_capacity"`
	Needs         Needs             `json:"needs"`
	Traits        Traits            `json:"traits"`
	Aptitudes     Aptitudes         `json:"aptitudes"`
	Skills        map[string]*Skill `json:"skills"`
	Flags         map[string]int    `json:"flags"`
	HabitTracker  map[string]int    `json:"habit_tracker"`
	Relationships map[string]int    `json:"relationships"`
	Memory        []MemoryEntry     `json:"memory"`
}

// NewPlayer returns a player with fresh-start defaults.
func NewPlayer() *Player {
	p := &Player{
		MoneyPence:    5000,
		UtilitiesPaid: true,
		CarryCapacity: 10,
		Needs: Needs{
			Hunger:  40,
			Fatigue: 20,
			Warmth:  70,
			Hygiene: 60,
			Mood:    60,
			Energy:  80,
			Health:  100,
		},
		Traits: Traits{
			Discipline: 40,
			Confidence: 40,
			Frugality:  40,
			Fitness:    40,
			Curiosity:  50,
			Creativity: 40,
			Stoicism:   40,
			Charisma:   40,
		},
		Aptitudes: Aptitudes{
			Body:        1.0,
			SocialGrace: 1.0,
			LogicSystem: 1.0,
			Domesticity: 1.0,
			Vitality:    1.0,
		},
		Skills:        make(map[string]*Skill),
		Flags:         make(map[string]int),
		HabitTracker:  make(map[string]int),
		Relationships: make(map[string]int),
		Memory:        make([]MemoryEntry, 0),
	}
	for _, name := range SkillNames {
		p.Skills[name] = &Skill{Value: 0, RustRate: 0.02, LastTick: 0}
	}
	return p
}

// SkillValue implements Stats.
func (p *Player) SkillValue(name string) float64 {
	if s, ok := p.Skills[name]; ok {
		return s.Value
	}
	return 0
}

// TraitValue implements Stats.
func (p *Player) TraitValue(name string) int {
	return p.Traits.Get(name)
}

// AptitudeValue implements Stats. The lookup goes through the skill's
// governing aptitude so callers pass a skill name, not an aptitude name.
func (p *Player) AptitudeValue(skillName string) float64 {
	apt, ok := SkillToAptitude[skillName]
	if !ok {
		return 1.0
	}
	return p.Aptitudes.Get(apt)
}

// NPC is a building contact. NPCs can be scoring actors and social targets,
// but only the executor mutates them.
type NPC struct {
	ID            string            `json:"id"`
	DisplayName   string            `json:"display_name"`
	Role          string            `json:"role"`
	Skills        map[string]*Skill `json:"skills"`
	Traits        Traits            `json:"traits"`
	Aptitudes     Aptitudes         `json:"aptitudes"`
	Relationships map[string]int    `json:"relationships"`
	Memory        []MemoryEntry     `json:"memory"`
}

// NewNPC returns an NPC with neutral stats.
func NewNPC(id, displayName, role string) *NPC {
	n := &NPC{
		ID:          id,
		DisplayName: displayName,
		Role:        role,
		Skills:      make(map[string]*Skill),
		Traits: Traits{
			Discipline: 50,
			Confidence: 50,
			Frugality:  50,
			Fitness:    50,
			Curiosity:  50,
			Creativity: 50,
			Stoicism:   50,
			Charisma:   50,
		},
		Aptitudes: Aptitudes{
			Body:        1.0,
			SocialGrace: 1.0,
			LogicSystem: 1.0,
			Domesticity: 1.0,
			Vitality:    1.0,
		},
		Relationships: make(map[string]int),
		Memory:        make([]MemoryEntry, 0),
	}
	for _, name := range SkillNames {
		n.Skills[name] = &Skill{Value: 10, RustRate: 0, LastTick: 0}
	}
	return n
}

// SkillValue implements Stats.
func (n *NPC) SkillValue(name string) float64 {
	if s, ok := n.Skills[name]; ok {
		return s.Value
	}
	return 0
}

// TraitValue implements Stats.
func (n *NPC) TraitValue(name string) int {
	return n.Traits.Get(name)
}

// AptitudeValue implements Stats.
func (n *NPC) AptitudeValue(skillName string) float64 {
	apt, ok := SkillToAptitude[skillName]
	if !ok {
		return 1.0
	}
	return n.Aptitudes.Get(apt)
}
