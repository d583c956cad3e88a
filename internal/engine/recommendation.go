package engine

import "github.com/amcapital/Rental-Investment-Simulator-Backend/internal/model"

// Recommendation levels, ordered from best to worst.
const (
	LevelExcellent = "excellent"
	LevelGood      = "good"
	LevelFair      = "fair"
	LevelWeak      = "weak"
)

// Recommend grades a gross return (percent) against fixed 8/5/3 thresholds.
func Recommend(grossReturn float64) model.Recommendation {
	switch {
	case grossReturn >= 8:
		return model.Recommendation{
			Level:   LevelExcellent,
			Message: "Excellent investissement ! Ce bien présente une rentabilité très attractive supérieure à 8%. Les conditions sont favorables pour un investissement locatif de qualité.",
		}
	case grossReturn >= 5:
		return model.Recommendation{
			Level:   LevelGood,
			Message: "Bon investissement. Avec un rendement entre 5% et 8%, ce bien offre une rentabilité correcte dans le contexte actuel du marché immobilier.",
		}
	case grossReturn >= 3:
		return model.Recommendation{
			Level:   LevelFair,
			Message: "Investissement correct mais prudence recommandée. Le rendement est dans la moyenne basse du marché. Vérifiez les possibilités d'optimisation.",
		}
	default:
		return model.Recommendation{
			Level:   LevelWeak,
			Message: "Attention : rendement faible. Ce bien présente un rendement inférieur aux standards du marché. Il est recommandé de revoir les paramètres ou chercher d'autres opportunités.",
		}
	}
}

// Advice is one titled paragraph of the detailed recommendations.
type Advice struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// DetailedAdvice lists the report's recommendation paragraphs. The first two
// depend on the result and mode; the last two always appear.
func DetailedAdvice(mode model.ExploitationMode, r model.CalculationResult) []Advice {
	var out []Advice
	if r.GrossReturn >= 7 {
		out = append(out, Advice{
			Title:   "Investissement recommandé",
			Content: "Ce bien présente une excellente rentabilité. Nous recommandons de procéder rapidement à l'acquisition en négociant si possible le prix d'achat pour optimiser encore davantage le rendement.",
		})
	}
	if mode == model.ShortTerm {
		out = append(out, Advice{
			Title:   "Location courte durée",
			Content: "La location Airbnb nécessite une gestion active et une veille réglementaire constante. Assurez-vous de respecter les réglementations locales et de prévoir du temps pour la gestion.",
		})
	}
	return append(out,
		Advice{
			Title:   "Optimisations possibles",
			Content: "Considérez les travaux d'amélioration qui pourraient augmenter le loyer, la recherche de financements avantageux, et l'optimisation fiscale (statut LMNP, SCI, etc.).",
		},
		Advice{
			Title:   "Points de vigilance",
			Content: "Vérifiez l'état du bien, l'environnement proche, les projets d'urbanisme, la demande locative locale et préparez une provision pour les travaux imprévus.",
		},
	)
}
