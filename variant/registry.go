package variant

import (
	"fmt"
	"sort"
)

// factories maps variant ids to constructors. Mode values carry match
// state, so every game gets a fresh instance.
var factories = map[string]func() Mode{
	"block":       newBlock,
	"allfives":    newAllFives,
	"chickenfoot": newChickenFoot,
	"partner":     newPartner,
	"sixlove":     newSixLove,
	"cross":       newCross,
	"draw":        newDraw,
	"cutthroat":   newCutthroat,
	"cuban":       newCuban,
}

// New constructs the mode registered under id.
func New(id string) (Mode, error) {
	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("unknown variant %q", id)
	}
	return f(), nil
}

// GetInfo returns the metadata for id without constructing a playable
// mode for it.
func GetInfo(id string) (Info, error) {
	m, err := New(id)
	if err != nil {
		return Info{}, err
	}
	return m.Info(), nil
}

// List returns metadata for every registered variant, sorted by id.
func List() []Info {
	infos := make([]Info, 0, len(factories))
	for _, f := range factories {
		infos = append(infos, f().Info())
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].ID < infos[j].ID })
	return infos
}

// IDs returns the registered variant ids, sorted.
func IDs() []string {
	ids := make([]string, 0, len(factories))
	for id := range factories {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
