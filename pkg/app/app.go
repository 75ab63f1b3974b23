package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/kerbaras/anisearch/pkg/app/screens"
	"github.com/kerbaras/anisearch/pkg/services"
)

type App struct {
	engine   *services.Engine
	pageSize int
}

func NewApp(engine *services.Engine, pageSize int) *App {
	return &App{engine: engine, pageSize: pageSize}
}

func (a *App) Run() error {
	model := screens.NewRootScreen(a.engine, a.pageSize)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}
