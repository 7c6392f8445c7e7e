// Package questhandlers maps bus events onto quest service operations and
// fans the outcomes back out as result events and gateway render commands.
package questhandlers

import (
	"fmt"

	questservice "github.com/aetherius-rpg/questboard/app/modules/quest/application"
	questtypes "github.com/aetherius-rpg/questboard/app/modules/quest/domain/types"
	"github.com/aetherius-rpg/questboard/internal/handlerwrapper"
	"github.com/aetherius-rpg/questboard/internal/results"
)

// QuestHandlers implements the Handlers interface for quest events.
type QuestHandlers struct {
	service questservice.Service
}

// NewQuestHandlers creates a new QuestHandlers instance.
func NewQuestHandlers(service questservice.Service) *QuestHandlers {
	return &QuestHandlers{service: service}
}

// mapOperationResult converts a service OperationResult to handler Results.
func mapOperationResult(
	result results.OperationResult,
	successTopic, failureTopic string,
) []handlerwrapper.Result {
	handlerResults := result.MapToHandlerResults(successTopic, failureTopic)

	wrapperResults := make([]handlerwrapper.Result, len(handlerResults))
	for i, hr := range handlerResults {
		wrapperResults[i] = handlerwrapper.Result{
			Topic:    hr.Topic,
			Payload:  hr.Payload,
			Metadata: hr.Metadata,
		}
	}

	return wrapperResults
}

func mention(user questtypes.UserID) string {
	return fmt.Sprintf("<@%s>", user)
}
