package adapter

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	domadapter "github.com/zjrosen/lattice/internal/domain/adapter"
	"github.com/zjrosen/lattice/internal/domain/ifspec"
	"github.com/zjrosen/lattice/internal/log"
)

// Loader errors
var (
	ErrEmptyInterfaceName = errors.New("interface name cannot be empty")
	ErrDuplicateInterface = errors.New("duplicate interface definition")
	ErrReservedName       = errors.New("interface name is reserved")
	ErrUnknownInterface   = errors.New("unknown interface")
	ErrEmptyProvided      = errors.New("adapter must name a provided interface")
)

// Spec names with built-in meaning in documents.
const (
	anySpecName  = "Any"
	nullSpecName = "*"
)

// InterfaceDef declares one interface and its bases.
type InterfaceDef struct {
	Name  string   `yaml:"name"`
	Bases []string `yaml:"bases"`
}

// AdapterDef declares one adapter registration.
type AdapterDef struct {
	For      []string `yaml:"for"`
	Provides string   `yaml:"provides"`
	Name     string   `yaml:"name"`
	Factory  string   `yaml:"factory"`
}

// SubscriptionDef declares one subscription. An empty Provides designates a
// handler.
type SubscriptionDef struct {
	For      []string `yaml:"for"`
	Provides string   `yaml:"provides"`
	Factory  string   `yaml:"factory"`
}

// Document is a parsed registry document.
type Document struct {
	Interfaces    []InterfaceDef    `yaml:"interfaces"`
	Adapters      []AdapterDef      `yaml:"adapters"`
	Subscriptions []SubscriptionDef `yaml:"subscriptions"`
}

// ParseDocument decodes a YAML registry document.
func ParseDocument(data []byte) (*Document, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing registry document: %w", err)
	}
	return &doc, nil
}

// ParseDocumentFile reads and decodes a YAML registry document from disk.
func ParseDocumentFile(path string) (*Document, error) {
	data, err := os.ReadFile(path) //nolint:gosec // G304: path comes from user config
	if err != nil {
		return nil, fmt.Errorf("reading registry document: %w", err)
	}
	return ParseDocument(data)
}

// buildInterfaces constructs the interface lattice from the document.
// Bases must be declared before the interfaces that extend them.
func buildInterfaces(doc *Document) (map[string]*ifspec.Interface, error) {
	interfaces := make(map[string]*ifspec.Interface, len(doc.Interfaces))

	for _, def := range doc.Interfaces {
		if def.Name == "" {
			return nil, ErrEmptyInterfaceName
		}
		if def.Name == anySpecName || def.Name == nullSpecName {
			return nil, fmt.Errorf("%w: %s", ErrReservedName, def.Name)
		}
		if _, exists := interfaces[def.Name]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateInterface, def.Name)
		}

		bases := make([]*ifspec.Interface, 0, len(def.Bases))
		for _, baseName := range def.Bases {
			base, ok := interfaces[baseName]
			if !ok {
				return nil, fmt.Errorf("%w: %s (base of %s)", ErrUnknownInterface, baseName, def.Name)
			}
			bases = append(bases, base)
		}
		interfaces[def.Name] = ifspec.New(def.Name, bases...)
	}

	return interfaces, nil
}

// resolveSpecName maps a document spec name to a spec. "*" is the Null
// wildcard and "Any" the universal top; everything else must be declared.
func resolveSpecName(interfaces map[string]*ifspec.Interface, name string) (ifspec.Spec, error) {
	switch name {
	case nullSpecName:
		return ifspec.Null, nil
	case anySpecName:
		return ifspec.Any, nil
	}
	iface, ok := interfaces[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownInterface, name)
	}
	return iface, nil
}

func resolveSpecNames(interfaces map[string]*ifspec.Interface, names []string) ([]ifspec.Spec, error) {
	specs := make([]ifspec.Spec, len(names))
	for i, name := range names {
		spec, err := resolveSpecName(interfaces, name)
		if err != nil {
			return nil, err
		}
		specs[i] = spec
	}
	return specs, nil
}

// buildRegistry populates a fresh domain registry from the document.
// Factory ids present in the catalog register as callable factories wrapped
// with their id; unknown ids register the id string itself so resolution
// stays inspectable without Go code.
func buildRegistry(doc *Document, interfaces map[string]*ifspec.Interface, factories map[string]domadapter.Factory) (*domadapter.Registry, error) {
	registry := domadapter.New()

	for _, def := range doc.Adapters {
		if def.Provides == "" {
			return nil, ErrEmptyProvided
		}
		required, err := resolveSpecNames(interfaces, def.For)
		if err != nil {
			return nil, err
		}
		provided, err := resolveSpecName(interfaces, def.Provides)
		if err != nil {
			return nil, err
		}
		registry.Register(required, provided, def.Name, factoryValue(factories, def.Factory))
	}

	for _, def := range doc.Subscriptions {
		required, err := resolveSpecNames(interfaces, def.For)
		if err != nil {
			return nil, err
		}
		var provided ifspec.Spec
		if def.Provides != "" {
			provided, err = resolveSpecName(interfaces, def.Provides)
			if err != nil {
				return nil, err
			}
		}
		registry.Subscribe(required, provided, factoryValue(factories, def.Factory))
	}

	log.Debug(log.CatLoader, "registry built",
		"interfaces", len(doc.Interfaces),
		"adapters", len(doc.Adapters),
		"subscriptions", len(doc.Subscriptions))

	return registry, nil
}

// factoryValue resolves a factory id against the catalog.
func factoryValue(factories map[string]domadapter.Factory, id string) any {
	if f, ok := factories[id]; ok {
		return NamedFactory{ID: id, Factory: f}
	}
	return id
}

// NamedFactory pairs a cataloged factory with the id it was registered
// under, so results remain printable.
type NamedFactory struct {
	ID      string
	Factory domadapter.Factory
}

// Adapt delegates to the underlying factory.
func (f NamedFactory) Adapt(objs ...any) any {
	return f.Factory.Adapt(objs...)
}

// String returns the catalog id.
func (f NamedFactory) String() string {
	return f.ID
}
