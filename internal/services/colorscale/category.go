package colorscale

import "math"

// Class is a CSS class for a category table cell.
type Class string

const (
	ClassNone       Class = ""
	ClassGreenDark  Class = "green-dark"
	ClassLightGreen Class = "light-green"
	ClassYellow     Class = "yellow"
	ClassOrange     Class = "orange"
	ClassRed        Class = "red"
)

var classLadder = [...]Class{ClassGreenDark, ClassLightGreen, ClassYellow, ClassOrange}

// Metric is the semantic type of a table column.
type Metric string

const (
	MetricRet      Metric = "ret"
	MetricV1       Metric = "v1"
	MetricRisk     Metric = "risk"
	MetricAbsMom   Metric = "absmom"
	MetricMomentum Metric = "momentum"
)

// Lower bounds, best band first; anything below the last is red.
var atLeast = map[Metric][4]float64{
	MetricRet:      {20, 15, 10, 5},
	MetricV1:       {0.8, 0.6, 0.4, 0.2},
	MetricAbsMom:   {30, 20, 10, 0},
	MetricMomentum: {20, 10, 0, -10},
}

var riskHigherIsBetter = [4]float64{80, 60, 40, 20}

// Upper bounds for risk when lower is better; anything above the last is red.
var riskLowerIsBetter = [4]float64{35, 50, 65, 80}

// Classifier assigns table classes; the risk direction is configurable.
type Classifier struct {
	risk Direction
}

// NewClassifier returns a classifier using d for the risk column.
func NewClassifier(d Direction) Classifier {
	if d == "" {
		d = HigherIsBetter
	}
	return Classifier{risk: d}
}

// Class returns the class for v; nil, NaN and unknown metrics get ClassNone.
func (c Classifier) Class(metric Metric, v *float64) Class {
	if v == nil || math.IsNaN(*v) {
		return ClassNone
	}
	val := *v

	if metric == MetricRisk {
		if c.risk == LowerIsBetter {
			for i, upper := range riskLowerIsBetter {
				if val <= upper {
					return classLadder[i]
				}
			}
			return ClassRed
		}
		return ladderAtLeast(riskHigherIsBetter, val)
	}

	bounds, ok := atLeast[metric]
	if !ok {
		return ClassNone
	}
	return ladderAtLeast(bounds, val)
}

func ladderAtLeast(bounds [4]float64, v float64) Class {
	for i, lower := range bounds {
		if v >= lower {
			return classLadder[i]
		}
	}
	return ClassRed
}
