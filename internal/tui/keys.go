package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Reload         key.Binding
	Physics        key.Binding
	ExportJSON     key.Binding
	ExportPlantUML key.Binding
	ExportD2       key.Binding
	View           key.Binding
	Help           key.Binding
	Quit           key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Reload:         key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		Physics:        key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "toggle layout")),
		ExportJSON:     key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "export json")),
		ExportPlantUML: key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "export plantuml")),
		ExportD2:       key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "export d2")),
		View:           key.NewBinding(key.WithKeys("v", "tab"), key.WithHelp("v", "switch view")),
		Help:           key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:           key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Reload, k.Physics, k.ExportJSON, k.View, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Reload, k.Physics, k.View},
		{k.ExportJSON, k.ExportPlantUML, k.ExportD2},
		{k.Help, k.Quit},
	}
}
