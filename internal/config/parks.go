package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
	_ "time/tzdata" // park zones must resolve on hosts without a system tz database

	"gopkg.in/yaml.v3"

	"github.com/preston-bernstein/park-waits-service/internal/domain/parks"
	"github.com/preston-bernstein/park-waits-service/internal/timeutil"
)

// parkEntry mirrors one park in the parks file.
type parkEntry struct {
	Name     string       `yaml:"name"`
	EntityID string       `yaml:"entity_id"`
	Timezone string       `yaml:"timezone"`
	Events   []eventEntry `yaml:"events"`
}

type eventEntry struct {
	Name string `yaml:"name"`
	From string `yaml:"from"`
	To   string `yaml:"to"`
}

type parksDocument struct {
	Parks []parkEntry `yaml:"parks"`
}

// LoadParks reads the parks file at path. The file may be a top-level list of parks or
// a mapping with a "parks" key; JSON is accepted as well since it parses as YAML.
// Any malformed park fails the whole load.
func LoadParks(path string) ([]parks.Park, error) {
	if path == "" {
		return nil, errors.New("parks file path is empty")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read parks file: %w", err)
	}
	return ParseParks(data)
}

// ParseParks decodes parks file contents.
func ParseParks(data []byte) ([]parks.Park, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("decode parks file: %w", err)
	}
	if len(root.Content) == 0 {
		return nil, errors.New("parks file is empty")
	}

	var entries []parkEntry
	doc := root.Content[0]
	switch doc.Kind {
	case yaml.SequenceNode:
		if err := doc.Decode(&entries); err != nil {
			return nil, fmt.Errorf("decode parks list: %w", err)
		}
	case yaml.MappingNode:
		var wrapped parksDocument
		if err := doc.Decode(&wrapped); err != nil {
			return nil, fmt.Errorf("decode parks document: %w", err)
		}
		entries = wrapped.Parks
	default:
		return nil, errors.New("parks file must be a list or a mapping with a parks key")
	}

	out := make([]parks.Park, 0, len(entries))
	for i, e := range entries {
		p, err := e.toPark()
		if err != nil {
			label := e.Name
			if label == "" {
				label = fmt.Sprintf("#%d", i+1)
			}
			return nil, fmt.Errorf("park %s: %w", label, err)
		}
		out = append(out, p)
	}
	return out, nil
}

func (e parkEntry) toPark() (parks.Park, error) {
	name := strings.TrimSpace(e.Name)
	if name == "" {
		return parks.Park{}, errors.New("name is required")
	}
	entityID := strings.TrimSpace(e.EntityID)
	if entityID == "" {
		return parks.Park{}, errors.New("entity_id is required")
	}
	if strings.TrimSpace(e.Timezone) == "" {
		return parks.Park{}, errors.New("timezone is required")
	}
	loc, err := time.LoadLocation(e.Timezone)
	if err != nil {
		return parks.Park{}, fmt.Errorf("timezone %q: %w", e.Timezone, err)
	}

	events := make([]parks.Event, 0, len(e.Events))
	for _, ev := range e.Events {
		from, err := timeutil.ParseCivilDate(ev.From)
		if err != nil {
			return parks.Park{}, fmt.Errorf("event %q from date: %w", ev.Name, err)
		}
		to, err := timeutil.ParseCivilDate(ev.To)
		if err != nil {
			return parks.Park{}, fmt.Errorf("event %q to date: %w", ev.Name, err)
		}
		events = append(events, parks.Event{Name: ev.Name, From: from, To: to})
	}

	return parks.Park{
		Name:     name,
		EntityID: entityID,
		Timezone: e.Timezone,
		Events:   events,
		Location: loc,
	}, nil
}
