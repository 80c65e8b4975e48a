// Package research declares the investment research team: three agents and
// the ordered tasks they work through. The sequence is a simple chain, so
// each task only depends on tasks declared before it.
package research

import "research-agent/internal/domain/entity"

const (
	TaskMarketResearch   = "market_research"
	TaskStockSelection   = "stock_selection"
	TaskInvestmentReport = "investment_report"
)

// Tasks returns the pipeline's task sequence. All three agents get the web
// search tool; temperature applies to every agent uniformly.
func Tasks(temperature float32) []entity.Task {
	marketResearcher := entity.Agent{
		Role:        "Stock Market Researcher",
		Goal:        "Identify the top performing stocks and sectors with strong growth potential for the current year",
		Backstory:   "You are a financial analyst with expertise in identifying high-growth stocks across different sectors.",
		Tools:       []entity.ToolName{entity.ToolWebSearch},
		Temperature: temperature,
	}

	stockAnalyst := entity.Agent{
		Role:        "Stock Analyst",
		Goal:        "Analyze and select the top 10 stocks to invest in for the current year",
		Backstory:   "You are a seasoned stock analyst with 10+ years of experience in fundamental and technical analysis.",
		Tools:       []entity.ToolName{entity.ToolWebSearch},
		Temperature: temperature,
	}

	investmentAdvisor := entity.Agent{
		Role:        "Investment Advisor",
		Goal:        "Create a compelling investment recommendation report for the top 10 stocks",
		Backstory:   "You are a professional investment advisor who helps clients make informed decisions.",
		Tools:       []entity.ToolName{entity.ToolWebSearch},
		Temperature: temperature,
	}

	return []entity.Task{
		{
			Name:           TaskMarketResearch,
			Description:    "Research current stock market trends and identify sectors with strong growth potential for the current year.",
			ExpectedOutput: "A list of 5-7 promising sectors with explanations of why they have growth potential this year",
			Agent:          marketResearcher,
		},
		{
			Name:           TaskStockSelection,
			Description:    "Based on the sector research, identify the top 10 stocks to invest in this year.",
			ExpectedOutput: "A list of 10 stocks with their basic information and investment rationale",
			Agent:          stockAnalyst,
			Dependencies:   []string{TaskMarketResearch},
		},
		{
			Name:           TaskInvestmentReport,
			Description:    "Create a comprehensive investment report presenting the top 10 stocks to invest in this year.",
			ExpectedOutput: "A well-formatted investment report in markdown with detailed analysis of each recommended stock",
			Agent:          investmentAdvisor,
			Dependencies:   []string{TaskMarketResearch, TaskStockSelection},
		},
	}
}
