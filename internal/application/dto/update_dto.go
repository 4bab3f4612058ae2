package dto

import (
	"github.com/dreschagin/spacex-launch-dashboard/internal/application/binding"
	"github.com/dreschagin/spacex-launch-dashboard/internal/domain/valueobject"
)

// StateDTO - значения элементов управления
type StateDTO struct {
	Site  string     `json:"site"`
	Range [2]float64 `json:"range"`
}

// FromState конвертирует binding.State в DTO
func FromState(state binding.State) StateDTO {
	return StateDTO{Site: state.Site.String(), Range: [2]float64{state.Low, state.High}}
}

// ToState конвертирует DTO в binding.State
func (s StateDTO) ToState() binding.State {
	return binding.State{
		Site: valueobject.NewSiteSelection(s.Site),
		Low:  s.Range[0],
		High: s.Range[1],
	}
}

// UpdateRequestDTO - запрос stateless обновления: что изменилось и текущее состояние
type UpdateRequestDTO struct {
	Trigger string   `json:"trigger"`
	State   StateDTO `json:"state"`
}

// UpdateDTO - новое содержимое одного выходного элемента
type UpdateDTO struct {
	Target string     `json:"target"`
	Rule   string     `json:"rule,omitempty"`
	Figure *FigureDTO `json:"figure,omitempty"`
	SVG    string     `json:"svg,omitempty"`
	Error  string     `json:"error,omitempty"`
}

// UpdateResponseDTO - ответ на UpdateRequestDTO
type UpdateResponseDTO struct {
	Updates []*UpdateDTO `json:"updates"`
}

// FromUpdate конвертирует binding.Update в DTO (без SVG)
func FromUpdate(update binding.Update) *UpdateDTO {
	out := &UpdateDTO{
		Target: string(update.Target),
		Rule:   update.Rule,
	}
	if update.Err != nil {
		out.Error = update.Err.Error()
		return out
	}
	out.Figure = FromSpec(update.Spec)
	return out
}
