package agent

import (
	"context"
	"strings"

	"github.com/etnz/fifotax"
	"github.com/etnz/fifotax/docs"
	"github.com/etnz/fifotax/renderer"
	"google.golang.org/genai"
)

const model = "gemini-2.5-pro"

// creates the facilitator
func newFacilitator(experts ...*Expert) *Expert {
	return &Expert{
		Name:        "Facilitator",
		Description: ``,
		ModelName:   model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(experts)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			As a facilitator you are in charge of the conversation and solving the user's request.

			Learn about the expert's skill that you can get from the Tools to ask them questions.
			They are at your service and 100% dedicated to you, they keep context of your previous questions.

			The user is a German tax payer holding funds and stocks in several depots. They want to
			understand the tax due if they sold their positions today, the Vorabpauschale of their funds,
			and how to optimize which lots to sell.

			Devise a plan of questions to ask to each experts and come up with the best response to the user's request.
			Answer in the language of the user.
		`}}},
		},
		Library: NewLibrary(experts),
	}
}

// NewResearcher creates an expert grounded on Google Search, for questions
// about funds and tax rules.
func NewResearcher() *Expert {
	return &Expert{
		Name: "Researcher",
		Description: `This is an expert researcher, aware of the German tax rules on capital income
		and of the financial products. Ask the Researcher about the partial exemption of a fund,
		the yearly Vorabpauschale rates, or recent news about a security.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{GoogleSearch: &genai.GoogleSearch{}},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			You are an expert in German capital income taxation and in financial products.
			You leverage Google Search to ground your assertions in a solid truth.
			`}}},
		},
	}
}

// Reports are the computed reports the Advisor can read.
type Reports struct {
	Holdings []fifotax.Holding
	Report   *fifotax.Report
	Vap      *fifotax.VapSummary
}

// NewAdvisor creates the expert reading the user's reports.
func NewAdvisor(r *Reports) *Expert {
	lib := r.functions()
	return &Expert{
		Name: "Advisor",
		Description: `This is the Advisor. They know the user's depots: the remaining lots of every
		security, their acquisition cost including Vorabpauschale, and the tax due if they were sold
		at the latest quote.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(lib)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
				You are a tax advisor in charge of the user's depots.
				You know how to use the Tools to extract relevant information about the user's lots and taxes.
				You are part of a team of experts, yours is everything about the user's depots. They might ask
				you questions with an approximative language, figure out what they meant.

				Use the Topic tool to learn how the figures are computed before explaining them.
			`}}},
		},
		Library: NewLibrary(lib),
	}
}

// functions returns the tools reading the reports.
func (r *Reports) functions() []Function {
	noArgs := &genai.Schema{Type: genai.TypeObject, Properties: map[string]*genai.Schema{}}
	markdown := func(description string) *genai.Schema {
		return &genai.Schema{Type: genai.TypeString, Description: description}
	}
	static := func(name, description, response string, render func() string) Function {
		return &Func{
			Decl: &genai.FunctionDeclaration{
				Name:        name,
				Description: description,
				Parameters:  noArgs,
				Response:    markdown(response),
			},
			Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
				return outputResponse(id, name, render())
			},
		}
	}

	return []Function{
		static("Holdings",
			"Holdings lists the remaining shares of every security in every depot.",
			"A markdown table with the depot, security, ISIN, number of shares and lots.",
			func() string { return renderer.HoldingsMarkdown(r.Holdings) }),
		&Func{
			Decl: &genai.FunctionDeclaration{
				Name: "Lots",
				Description: `Lots lists the remaining lots, oldest first, with their acquisition cost, Vorabpauschale,
				taxable gain, tax and net value at the latest quote.`,
				Parameters: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"security": {
							Type:        genai.TypeString,
							Description: "Only list the lots of the securities whose name or ISIN contains this text. All the lots by default.",
						},
					},
				},
				Response: markdown("A markdown table per depot and security."),
			},
			Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
				filter, err := stringArg(args, "security", false)
				if err != nil {
					return errorResponse(id, "Lots", err)
				}
				return outputResponse(id, "Lots", renderer.LotsMarkdown(r.filter(filter)))
			},
		},
		static("Taxes",
			"Taxes sums the tax due per depot and in total, if every position was sold at its latest quote.",
			"A markdown table of the totals per depot.",
			func() string { return renderer.TaxMarkdown(r.Report) }),
		static("Vap",
			"Vap sums the Vorabpauschale of the remaining shares per fund, depot and year, before and after partial exemption.",
			"A markdown table of the yearly Vorabpauschale.",
			func() string { return renderer.VapMarkdown(r.Vap) }),
		&Func{
			Decl: &genai.FunctionDeclaration{
				Name:        "Topic",
				Description: "Topic returns the documentation of how fifotax computes its figures.",
				Parameters: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"name": {
							Type:        genai.TypeString,
							Description: "The topic: fifo, vap, netting, tax or formats. '*' for all of them.",
						},
					},
					Required: []string{"name"},
				},
				Response: markdown("The markdown documentation of the topic."),
			},
			Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
				name, err := stringArg(args, "name", true)
				if err != nil {
					return errorResponse(id, "Topic", err)
				}
				content, err := docs.GetTopic(name)
				if err != nil {
					return errorResponse(id, "Topic", err)
				}
				return outputResponse(id, "Topic", content)
			},
		},
	}
}

// filter returns a copy of the report limited to the securities whose name
// or ISIN contains text, case insensitively.
func (r *Reports) filter(text string) *fifotax.Report {
	if text == "" {
		return r.Report
	}
	text = strings.ToLower(text)
	res := *r.Report
	res.Securities = nil
	for _, s := range r.Report.Securities {
		if strings.Contains(strings.ToLower(s.Security), text) || strings.Contains(strings.ToLower(s.ISIN), text) {
			res.Securities = append(res.Securities, s)
		}
	}
	return &res
}
