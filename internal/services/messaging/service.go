package messaging

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"

	"github.com/KirkDiggler/lightmatch/internal/models"
)

// Message keys double as the English text
const (
	keyFinalScore    = "Final Score: %d"
	keyFinalScores   = "Final Scores"
	keyScoreLine     = "%s: %d"
	keyWins          = "🏆 %s Wins! 🏆"
	keyDraw          = "🤝 It's a Draw! 🤝"
	keyGameComplete  = "Game Complete!"
	keyScoresHidden  = "Scores hidden"
	keySoloSetup     = "Solo Game Setup"
	keyPvPSetup      = "Player vs Player Setup"
	keyTeamSetup     = "Team vs Team Setup"
	keyInvalidRounds = "Please enter a number of rounds greater than zero."
	keyInvalidMode   = "Please choose solo, player vs player or team vs team."
	keyInvalidPoints = "Points must be a whole number of zero or more."
	keyNoGame        = "There is no game in progress."
	keyUnknownError  = "Something went wrong, please try again."
)

var portuguese = map[string]string{
	keyFinalScore:    "Pontuação Final: %d",
	keyFinalScores:   "Pontuações Finais",
	keyWins:          "🏆 %s Venceu! 🏆",
	keyDraw:          "🤝 Empate! 🤝",
	keyGameComplete:  "Fim de Jogo!",
	keyScoresHidden:  "Pontuação oculta",
	keySoloSetup:     "Configuração do Jogo Solo",
	keyPvPSetup:      "Configuração Jogador vs Jogador",
	keyTeamSetup:     "Configuração Equipe vs Equipe",
	keyInvalidRounds: "Informe um número de rodadas maior que zero.",
	keyInvalidMode:   "Escolha solo, jogador vs jogador ou equipe vs equipe.",
	keyInvalidPoints: "Os pontos devem ser um número inteiro igual ou maior que zero.",
	keyNoGame:        "Não há nenhum jogo em andamento.",
	keyUnknownError:  "Algo deu errado, tente novamente.",
}

var feedback = map[language.Tag]map[bool][]string{
	language.English: {
		true: {
			"Nice memory, %s!",
			"Spot on, %s!",
			"%s remembered it!",
			"Sharp eyes, %s!",
		},
		false: {
			"Not quite, %s.",
			"So close, %s!",
			"The squares got you this time, %s.",
		},
	},
	language.Portuguese: {
		true: {
			"Boa memória, %s!",
			"Acertou em cheio, %s!",
			"%s lembrou!",
		},
		false: {
			"Quase, %s.",
			"Não foi dessa vez, %s.",
			"Os quadrados te enganaram, %s.",
		},
	},
}

// service implements the Service interface
type service struct {
	catalog catalog.Catalog
	matcher language.Matcher

	mu   sync.Mutex
	rand *rand.Rand
}

// NewService creates a new messaging service
func NewService(config *ServiceConfig) (Service, error) {
	builder := catalog.NewBuilder(catalog.Fallback(language.English))
	for key, text := range portuguese {
		if err := builder.SetString(language.Portuguese, key, text); err != nil {
			return nil, err
		}
	}

	seed := time.Now().UnixNano()
	if config != nil && config.Seed != 0 {
		seed = config.Seed
	}

	return &service{
		catalog: builder,
		matcher: language.NewMatcher([]language.Tag{language.English, language.Portuguese}),
		rand:    rand.New(rand.NewSource(seed)),
	}, nil
}

func (s *service) tag(lang string) language.Tag {
	tag, _ := language.MatchStrings(s.matcher, lang)
	base, _ := tag.Base()
	if base.String() == "pt" {
		return language.Portuguese
	}
	return language.English
}

func (s *service) printer(lang string) *message.Printer {
	return message.NewPrinter(s.tag(lang), message.Catalog(s.catalog))
}

// GetSetupTitle returns the setup screen title for a game mode
func (s *service) GetSetupTitle(ctx context.Context, input *GetSetupTitleInput) (*GetSetupTitleOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	key := keySoloSetup
	switch input.Mode {
	case models.GameModePvP:
		key = keyPvPSetup
	case models.GameModeTeam:
		key = keyTeamSetup
	}

	return &GetSetupTitleOutput{
		Title: s.printer(input.Language).Sprintf(key),
	}, nil
}

// GetResultMessage returns the results screen text for a finished game
func (s *service) GetResultMessage(ctx context.Context, input *GetResultMessageInput) (*GetResultMessageOutput, error) {
	if input == nil || input.Result == nil {
		return nil, errors.New("input and result cannot be nil")
	}

	p := s.printer(input.Language)
	result := input.Result

	if result.ScoresHidden {
		return &GetResultMessageOutput{
			Title: p.Sprintf(keyGameComplete),
			Lines: []string{p.Sprintf(keyScoresHidden)},
		}, nil
	}

	if result.Mode == models.GameModeSolo {
		output := &GetResultMessageOutput{}
		if len(result.Players) > 0 {
			output.Title = result.Players[0].Name
			output.Lines = []string{p.Sprintf(keyFinalScore, result.Players[0].Score)}
		}
		return output, nil
	}

	output := &GetResultMessageOutput{
		Title: p.Sprintf(keyFinalScores),
		Lines: make([]string, 0, len(result.Players)),
	}
	for _, player := range result.Players {
		output.Lines = append(output.Lines, p.Sprintf(keyScoreLine, player.Name, player.Score))
	}

	if winner := result.Winner(); winner != nil && !result.IsDraw {
		output.Verdict = p.Sprintf(keyWins, winner.Name)
	} else {
		output.Verdict = p.Sprintf(keyDraw)
	}

	return output, nil
}

// GetFeedbackMessage returns a random reaction to an answer
func (s *service) GetFeedbackMessage(ctx context.Context, input *GetFeedbackMessageInput) (*GetFeedbackMessageOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	messages := feedback[s.tag(input.Language)][input.Correct]

	s.mu.Lock()
	selected := messages[s.rand.Intn(len(messages))]
	s.mu.Unlock()

	return &GetFeedbackMessageOutput{
		Message: s.printer(input.Language).Sprintf(selected, input.PlayerName),
	}, nil
}

// GetErrorMessage returns a user-facing prompt for a rejected action
func (s *service) GetErrorMessage(ctx context.Context, input *GetErrorMessageInput) (*GetErrorMessageOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	var key string
	switch input.ErrorType {
	case ErrorTypeInvalidRounds:
		key = keyInvalidRounds
	case ErrorTypeInvalidMode:
		key = keyInvalidMode
	case ErrorTypeInvalidPoints:
		key = keyInvalidPoints
	case ErrorTypeNoGame:
		key = keyNoGame
	default:
		key = keyUnknownError
	}

	return &GetErrorMessageOutput{
		Message: s.printer(input.Language).Sprintf(key),
	}, nil
}
