package taxonomy

import "time"

type Program struct {
	ID          string    `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description" db:"description"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"` // UTC
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"` // UTC
}

// SkillArea is a named competency grouping under a Program.
type SkillArea struct {
	ID          string    `json:"id" db:"id"`
	ProgramID   string    `json:"program_id" db:"program_id"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description" db:"description"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"` // UTC
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"` // UTC
}

// SubTask is a gradable unit under a SkillArea.
type SubTask struct {
	ID          string    `json:"id" db:"id"`
	SkillAreaID string    `json:"skill_area_id" db:"skill_area_id"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description" db:"description"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"` // UTC
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"` // UTC
}

// Lookup holds id-indexed taxonomy records resolved for a join.
// Unresolved ids are simply absent.
type Lookup struct {
	Programs   map[string]Program
	SkillAreas map[string]SkillArea
	SubTasks   map[string]SubTask
}

func newLookup() Lookup {
	return Lookup{
		Programs:   make(map[string]Program),
		SkillAreas: make(map[string]SkillArea),
		SubTasks:   make(map[string]SubTask),
	}
}

// SkillArea returns the SkillArea with the given id, if resolved.
func (l Lookup) SkillArea(id string) (SkillArea, bool) {
	sa, ok := l.SkillAreas[id]
	return sa, ok && id != ""
}

// SubTask returns the SubTask with the given id, if resolved.
func (l Lookup) SubTask(id string) (SubTask, bool) {
	st, ok := l.SubTasks[id]
	return st, ok && id != ""
}

// ProgramOf returns the Program the SkillArea with the given id belongs to, if both are resolved.
func (l Lookup) ProgramOf(skillAreaID string) (Program, bool) {
	sa, ok := l.SkillArea(skillAreaID)
	if !ok {
		return Program{}, false
	}
	p, ok := l.Programs[sa.ProgramID]
	return p, ok
}

// Scope is the part of the taxonomy reachable from a set of programs.
type Scope struct {
	SkillAreas []SkillArea `json:"skill_areas"`
	SubTasks   []SubTask   `json:"sub_tasks"`
}

func (s Scope) SkillAreaIDs() []string {
	ids := make([]string, 0, len(s.SkillAreas))
	for _, sa := range s.SkillAreas {
		ids = append(ids, sa.ID)
	}
	return ids
}

func (s Scope) SubTaskIDs() []string {
	ids := make([]string, 0, len(s.SubTasks))
	for _, st := range s.SubTasks {
		ids = append(ids, st.ID)
	}
	return ids
}
