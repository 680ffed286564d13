package bank

// Module groups the topics a learner can drill into.
type Module struct {
	ID     int
	Topics []string
}

// Modules is the fixed course layout. Question data references these
// module numbers and topic names; Load verifies the references.
var Modules = []Module{
	{
		ID: 1,
		Topics: []string{
			"Basic Biological Principles",
			"Chemical Basis for Life",
			"Bioenergetics",
			"Homeostasis and Transport",
		},
	},
	{
		ID: 2,
		Topics: []string{
			"Cell Growth and Reproduction",
			"Genetics",
			"Theory of Evolution",
			"Ecology",
		},
	},
}

// ModuleByID returns the module with the given id, or nil.
func ModuleByID(id int) *Module {
	for i := range Modules {
		if Modules[i].ID == id {
			return &Modules[i]
		}
	}
	return nil
}

// ModuleIDs returns all known module numbers in declaration order.
func ModuleIDs() []int {
	ids := make([]int, 0, len(Modules))
	for _, m := range Modules {
		ids = append(ids, m.ID)
	}
	return ids
}

// HasTopic reports whether the module contains the named topic.
func (m *Module) HasTopic(topic string) bool {
	for _, t := range m.Topics {
		if t == topic {
			return true
		}
	}
	return false
}
