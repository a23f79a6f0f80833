// Package schema encodes the ~300-column mapping between source physical
// column names (P110100, B310101, EPSP, ...) and canonical business names
// as a declarative table, per spec.md §9's "metric catalogue is data, not
// logic" recommendation. Each MetricDef names exactly one source table,
// which resolves spec.md §9's non-deterministic-merge-order open question:
// there is no metric with two possible sources left to arbitrate.
package schema

// MetricDef is one row of the metric catalogue: a physical source column,
// its canonical business name, and the source table it is drawn from.
type MetricDef struct {
	PhysicalName  string
	CanonicalName string
	SourceTable   string
}

const (
	TableDay       = "ana_stk_val_idx"
	TableIncome    = "stk_income_gen"
	TableBalance   = "stk_bala_gen"
	TableCashFlow  = "stk_cash_gen"
	TableIndicator = "ana_stk_fin_idx"
)

// DayMetrics are the 19 day-level valuation columns sourced from
// ana_stk_val_idx.
var DayMetrics = []MetricDef{
	{"PE", "pe_ratio", TableDay},
	{"PC", "pcf_ratio", TableDay},
	{"PB", "pb_ratio", TableDay},
	{"TCAP_1", "market_cap", TableDay},
	{"TCAP_2", "market_cap_2", TableDay},
	{"A_TCAP_1", "a_share_market_val", TableDay},
	{"A_TCAP_2", "a_share_market_val_2", TableDay},
	{"SRV", "val_of_stk_right", TableDay},
	{"EV1", "ev", TableDay},
	{"EV2", "ev_2", TableDay},
	{"EV_EBIT", "ev_to_ebit", TableDay},
	{"DIV_RATE", "dividend_yield", TableDay},
	{"PE1", "pe_ratio_1", TableDay},
	{"PE2", "pe_ratio_2", TableDay},
	{"PEG", "peg_ratio", TableDay},
	{"PC1", "pcf_ratio_1", TableDay},
	{"PC2", "pcf_ratio_2", TableDay},
	{"PC3", "pcf_ratio_3", TableDay},
	{"PS", "ps_ratio", TableDay},
}

// IncomeMetrics are the consolidated-income-statement columns.
var IncomeMetrics = []MetricDef{
	{"P110100", "revenue", TableIncome},
	{"P110101", "operating_revenue", TableIncome},
	{"P110112", "sales_discount", TableIncome},
	{"P110200", "total_expense", TableIncome},
	{"P110202", "cost_of_goods_sold", TableIncome},
	{"P110302", "sales_tax", TableIncome},
	{"P120101", "gross_profit", TableIncome},
	{"P120201", "other_operating_income", TableIncome},
	{"P120302", "inventory_shrinkage", TableIncome},
	{"P120442", "selling_expense", TableIncome},
	{"P120412", "operating_expense", TableIncome},
	{"P120422", "ga_expense", TableIncome},
	{"P120432", "financing_expense", TableIncome},
	{"P120402", "period_cost", TableIncome},
	{"P120502", "order_cost", TableIncome},
	{"P120702", "prospecting_cost", TableIncome},
	{"P120601", "exchange_gains_or_losses", TableIncome},
	{"P131102", "asset_depreciation", TableIncome},
	{"P130101", "profit_from_operation", TableIncome},
	{"P130201", "investment_income", TableIncome},
	{"P130401", "subsidy_income", TableIncome},
	{"P130501", "non_operating_revenue", TableIncome},
	{"P130601", "pnl_adjustment", TableIncome},
	{"P130702", "non_operating_expense", TableIncome},
	{"P130712", "disposal_loss_on_asset", TableIncome},
	{"P130801", "non_operating_net_profit", TableIncome},
	{"P140101", "profit_before_tax", TableIncome},
	{"P140202", "income_tax", TableIncome},
	{"P140702", "profit_from_ma", TableIncome},
	{"P140801", "unrealised_investment_losses", TableIncome},
	{"P140901", "income_tax_refund", TableIncome},
	{"P150101", "net_profit", TableIncome},
	{"P160101", "net_profit_parent_company", TableIncome},
	{"P180101", "net_profit_before_ma", TableIncome},
	{"P210101", "retained_profit_at_beginning", TableIncome},
	{"P220101", "profit_available_for_distribution", TableIncome},
	{"P220302", "statutory_welfare_reserve", TableIncome},
	{"P220402", "staff_incentive_welfare_reserve", TableIncome},
	{"P220602", "enterprise_expansion_reserve", TableIncome},
	{"P230101", "profit_available_for_owner_distribution", TableIncome},
	{"P230202", "preferred_stock_dividends", TableIncome},
	{"P230302", "other_surplus_reserve", TableIncome},
	{"P230402", "ordinary_stock_dividends", TableIncome},
	{"P240602", "loss_on_debt_restructuring", TableIncome},
	{"P240801", "basic_earnings_per_share", TableIncome},
	{"P250100", "other_income", TableIncome},
	{"P260100", "total_income", TableIncome},
	{"P260101", "total_income_parent_company", TableIncome},
	{"P260102", "total_income_minority", TableIncome},
}

// BalanceMetrics are the consolidated-balance-sheet columns.
var BalanceMetrics = []MetricDef{
	{"B110101", "cash", TableBalance},
	{"B112201", "financial_asset_held_for_trading", TableBalance},
	{"B110201", "cash_equivalent", TableBalance},
	{"B110311", "current_investment", TableBalance},
	{"B110322", "current_investment_reserve", TableBalance},
	{"B110301", "net_current_investment", TableBalance},
	{"B110401", "bill_receivable", TableBalance},
	{"B110501", "devidend_receivable", TableBalance},
	{"B110601", "interest_receivable", TableBalance},
	{"B110711", "accts_receivable", TableBalance},
	{"B110721", "other_accts_receivable", TableBalance},
	{"B110732", "bad_debt_reserve", TableBalance},
	{"B110701", "net_accts_receivable", TableBalance},
	{"B110801", "other_receivables", TableBalance},
	{"B110901", "prepayment", TableBalance},
	{"B111001", "subsidy_receivable", TableBalance},
	{"B111101", "prepaid_tax", TableBalance},
	{"B111511", "inventory", TableBalance},
	{"B111522", "inventory_depreciation_reserve", TableBalance},
	{"B111501", "net_inventory", TableBalance},
	{"B111601", "deferred_expense", TableBalance},
	{"B111801", "contract_work", TableBalance},
	{"B112001", "long_term_debt_due_one_year", TableBalance},
	{"B112301", "non_current_debt_due_one_year", TableBalance},
	{"B112101", "other_current_assets", TableBalance},
	{"B110001", "current_assets", TableBalance},
	{"B120801", "financial_asset_available_for_sale", TableBalance},
	{"B120901", "financial_asset_hold_to_maturity", TableBalance},
	{"B121001", "real_estate_investment", TableBalance},
	{"B120111", "long_term_equity_investment", TableBalance},
	{"B121101", "long_term_receivables", TableBalance},
	{"B120121", "long_term_debt_investment", TableBalance},
	{"B120131", "other_long_term_investment", TableBalance},
	{"B120101", "long_term_investment", TableBalance},
	{"B120202", "provision_long_term_investment", TableBalance},
	{"B120301", "net_long_term_equity_investment", TableBalance},
	{"B120401", "net_long_term_debt_investment", TableBalance},
	{"B120001", "net_long_term_investment", TableBalance},
	{"B130111", "cost_fixed_assets", TableBalance},
	{"B130122", "accumulated_depreciation", TableBalance},
	{"B130131", "net_val_fixed_assets", TableBalance},
	{"B130142", "depreciation_reserve", TableBalance},
	{"B130101", "net_fixed_assets", TableBalance},
	{"B130201", "engineer_material", TableBalance},
	{"B130301", "construction_in_progress", TableBalance},
	{"B130401", "fixed_asset_to_be_disposed", TableBalance},
	{"B130601", "capitalized_biological_assets", TableBalance},
	{"B130701", "oil_and_gas_assets", TableBalance},
	{"B130001", "total_fixed_assets", TableBalance},
	{"B140101", "intangible_assets", TableBalance},
	{"B140601", "impairment_intangible_assets", TableBalance},
	{"B140701", "goodwill", TableBalance},
	{"B140301", "deferred_charges", TableBalance},
	{"B140401", "long_term_deferred_expenses", TableBalance},
	{"B140501", "other_long_term_assets", TableBalance},
	{"B140001", "total_intangible_and_other_assets", TableBalance},
	{"B150001", "deferred_income_tax_assets", TableBalance},
	{"B160101", "other_non_current_assets", TableBalance},
	{"B160000", "non_current_assets", TableBalance},
	{"B100000", "total_assets", TableBalance},
	{"B210101", "short_term_loans", TableBalance},
	{"B212301", "financial_liabilities", TableBalance},
	{"B210201", "notes_payable", TableBalance},
	{"B210301", "accts_payable", TableBalance},
	{"B210401", "advance_from_customers", TableBalance},
	{"B210501", "proxy_sale_revenue", TableBalance},
	{"B210601", "payroll_payable", TableBalance},
	{"B210701", "walfare_payable", TableBalance},
	{"B210801", "dividend_payable", TableBalance},
	{"B210901", "tax_payable", TableBalance},
	{"B212401", "interest_payable", TableBalance},
	{"B211101", "other_fees_payable", TableBalance},
	{"B211201", "internal_accts_payable", TableBalance},
	{"B211301", "other_payable", TableBalance},
	{"B211401", "short_term_debt", TableBalance},
	{"B211501", "accrued_expense", TableBalance},
	{"B211901", "estimated_liabilities", TableBalance},
	{"B212701", "deferred_income", TableBalance},
	{"B212001", "long_term_liabilities_due_one_year", TableBalance},
	{"B212101", "other_current_liabilities", TableBalance},
	{"B210001", "current_liabilities", TableBalance},
	{"B220101", "long_term_loans", TableBalance},
	{"B220201", "bond_payable", TableBalance},
	{"B220301", "long_term_payable", TableBalance},
	{"B220401", "grants_received", TableBalance},
	{"B220501", "housing_revolving_funds", TableBalance},
	{"B220601", "other_long_term_liabilities", TableBalance},
	{"B220001", "long_term_liabilities", TableBalance},
	{"B240001", "deferred_income_tax_liabilities", TableBalance},
	{"B250001", "other_non_current_liabilities", TableBalance},
	{"B270001", "non_current_liabilities", TableBalance},
	{"B200000", "total_liabilities", TableBalance},
	{"B310101", "paid_in_capital", TableBalance},
	{"B311202", "invesment_refund", TableBalance},
	{"B310201", "capital_reserve", TableBalance},
	{"B310301", "surplus_reserve", TableBalance},
	{"B310401", "statutory_reserve", TableBalance},
	{"B310501", "welfare_reserve", TableBalance},
	{"B310601", "unrealised_investment_loss", TableBalance},
	{"B310701", "undistributed_profit", TableBalance},
	{"B311101", "equity_parent_company", TableBalance},
	{"B300000", "total_equity", TableBalance},
	{"B400000", "minority_interest", TableBalance},
	{"B500000", "total_equity_and_liabilities", TableBalance},
	{"B290003", "provision", TableBalance},
	{"B221001", "deferred_revenue", TableBalance},
}

// CashFlowMetrics are the consolidated-cash-flow-statement columns.
var CashFlowMetrics = []MetricDef{
	{"C110101", "cash_received_from_sales_of_goods", TableCashFlow},
	{"C110201", "rental_cash", TableCashFlow},
	{"C110311", "refunds_of_vat", TableCashFlow},
	{"C110321", "refunds_of_other_taxes", TableCashFlow},
	{"C110301", "refunds_of_taxes", TableCashFlow},
	{"C110401", "cash_from_other_operating_activities", TableCashFlow},
	{"C110000", "cash_from_operating_activities", TableCashFlow},
	{"C120101", "cash_paid_for_goods_and_services", TableCashFlow},
	{"C120201", "cash_paid_for_rental", TableCashFlow},
	{"C120301", "cash_paid_for_employee", TableCashFlow},
	{"C120401", "cash_paid_for_taxes", TableCashFlow},
	{"C120501", "cash_paid_for_other_operation_activities", TableCashFlow},
	{"C120000", "cash_paid_for_operation_activities", TableCashFlow},
	{"C100000", "cash_flow_from_operating_activities", TableCashFlow},
	{"C210101", "cash_received_from_disposal_of_investment", TableCashFlow},
	{"C210211", "cash_received_from_dividend", TableCashFlow},
	{"C210221", "cash_received_from_interest", TableCashFlow},
	{"C210301", "cash_received_from_disposal_of_asset", TableCashFlow},
	{"C210401", "cash_received_from_other_investment_activities", TableCashFlow},
	{"C210000", "cash_received_from_investment_activities", TableCashFlow},
	{"C220101", "cash_paid_for_asset", TableCashFlow},
	{"C220201", "cash_paid_to_acquire_investment", TableCashFlow},
	{"C220301", "cash_paid_for_other_investment_activities", TableCashFlow},
	{"C220000", "cash_paid_for_investment_activities", TableCashFlow},
	{"C200000", "cash_flow_from_investing_activities", TableCashFlow},
	{"C310101", "cash_received_from_equity_investors", TableCashFlow},
	{"C310201", "cash_received_from_debt_investors", TableCashFlow},
	{"C310301", "cash_received_from_investors", TableCashFlow},
	{"C310401", "cash_received_from_financial_institution_borrows", TableCashFlow},
	{"C310501", "cash_received_from_other_financing_activities", TableCashFlow},
	{"C310000", "cash_received_from_financing_activities", TableCashFlow},
	{"C320101", "cash_paid_for_debt", TableCashFlow},
	{"C320301", "cash_paid_for_dividend_and_interest", TableCashFlow},
	{"C320701", "cash_paid_for_other_financing_activities", TableCashFlow},
	{"C320000", "cash_paid_to_financing_activities", TableCashFlow},
	{"C300000", "cash_flow_from_financing_activities", TableCashFlow},
	{"C410201", "cash_equivalent_inc_net", TableCashFlow},
}

// IndicatorMetrics are the pre-computed financial-indicator columns.
// Note ebit/INC_F vs ebitda/INC_G: ev_to_ebit (DayMetrics) is formed from
// qm.ebitda at recomputation time, reproducing the original's naming quirk
// deliberately rather than silently renaming it (see DESIGN.md).
var IndicatorMetrics = []MetricDef{
	{"EPSP", "earnings_per_share", TableIndicator},
	{"EPSFD", "fully_diluted_earnings_per_share", TableIndicator},
	{"EPSEED", "diluted_earnings_per_share", TableIndicator},
	{"EPSNED", "new_diluted_earnings_per_share", TableIndicator},
	{"EPSP_DED", "adjusted_earnings_per_share", TableIndicator},
	{"EPSFD_DED", "adjusted_fully_diluted_earnings_per_share", TableIndicator},
	{"EPSEED_DED", "adjusted_diluted_earnings_per_share", TableIndicator},
	{"BPS", "book_value_per_share", TableIndicator},
	{"BPSNED", "new_diluted_book_value_per_share", TableIndicator},
	{"PS_NET_VAL", "operating_cash_flow_per_share", TableIndicator},
	{"PS_OTR", "operating_total_revenue_per_share", TableIndicator},
	{"PS_OR", "operating_revenue_per_share", TableIndicator},
	{"PS_CR", "capital_reserve_per_share", TableIndicator},
	{"PS_LR", "earned_reserve_per_share", TableIndicator},
	{"PS_UP", "undistributed_profit_per_share", TableIndicator},
	{"PS_RE", "retained_earnings_per_share", TableIndicator},
	{"PS_CN", "cash_flow_from_operations_per_share", TableIndicator},
	{"PS_EBIT", "ebit_per_share", TableIndicator},
	{"PS_COM_CF", "free_cash_flow_company_per_share", TableIndicator},
	{"PS_SH_CF", "free_cash_flow_equity_per_share", TableIndicator},
	{"PS_CASH_BT", "dividend_per_share", TableIndicator},
	{"ROEA", "return_on_equity", TableIndicator},
	{"ROER", "return_on_equity_weighted_average", TableIndicator},
	{"ROED", "return_on_equity_diluted", TableIndicator},
	{"ROEA_DED", "adjusted_return_on_equity_average", TableIndicator},
	{"ROER_DED", "adjusted_return_on_equity_weighted_average", TableIndicator},
	{"ROED_DED", "adjusted_return_on_equity_diluted", TableIndicator},
	{"ROA", "return_on_asset", TableIndicator},
	{"ROA_NP", "return_on_asset_net_profit", TableIndicator},
	{"ROIC", "return_on_invested_capital", TableIndicator},
	{"ROE_YEAR", "annual_return_on_equity", TableIndicator},
	{"ROA_YEAR", "annual_return_on_asset", TableIndicator},
	{"ROA_NYEAR", "annual_return_on_asset_net_profit", TableIndicator},
	{"SEL_NINT", "net_profit_margin", TableIndicator},
	{"SEL_RINT", "gross_profit_margin", TableIndicator},
	{"SEL_COST", "cost_to_sales", TableIndicator},
	{"TR_NP", "net_profit_to_revenue", TableIndicator},
	{"TR_TP", "profit_from_operation_to_revenue", TableIndicator},
	{"TR_EBIT", "ebit_to_revenue", TableIndicator},
	{"TR_TC", "expense_to_revenue", TableIndicator},
	{"TP_ONI", "operating_profit_to_profit_before_tax", TableIndicator},
	{"TP_VNI", "invesment_profit_to_profit_before_tax", TableIndicator},
	{"TP_OON", "non_operating_profit_to_profit_before_tax", TableIndicator},
	{"TP_TAX", "income_tax_to_profit_before_tax", TableIndicator},
	{"TP_DNP", "adjusted_profit_to_total_profit", TableIndicator},
	{"CAP_LAB", "debt_to_asset_ratio", TableIndicator},
	{"CAP_RIG", "equity_multiplier", TableIndicator},
	{"CAP_FLO", "current_asset_to_total_asset", TableIndicator},
	{"CAP_NFL", "non_current_asset_to_total_asset", TableIndicator},
	{"CAP_SA", "tangible_asset_to_total_asset", TableIndicator},
	{"CAP_ILAB", "interest_bearing_debt_to_capital", TableIndicator},
	{"CAP_FLO_F", "current_debt_to_total_debt", TableIndicator},
	{"CAP_FLO_N", "non_current_debt_to_total_debt", TableIndicator},
	{"LAB_FLO", "current_ratio", TableIndicator},
	{"LAB_SLO", "quick_ratio", TableIndicator},
	{"LAB_NSO", "super_quick_ratio", TableIndicator},
	{"LAB_PR", "debt_to_equity_ratio", TableIndicator},
	{"LAB_OPR", "equity_to_debt_ratio", TableIndicator},
	{"LAB_APR", "equity_to_interest_bearing_debt", TableIndicator},
	{"LAB_TAN", "tangible_asset_to_debt", TableIndicator},
	{"LAB_ITAN", "tangible_asset_to_interest_bearing_debt", TableIndicator},
	{"LAB_NIAN", "tangible_asset_to_net_debt", TableIndicator},
	{"LAB_EBIT", "ebit_to_debt", TableIndicator},
	{"LAB_OC", "ocf_to_debt", TableIndicator},
	{"LAB_IOC", "ocf_to_interest_bearing_debt", TableIndicator},
	{"LAB_FOC", "ocf_to_current_ratio", TableIndicator},
	{"LAB_LOC", "ocf_to_net_debt", TableIndicator},
	{"LAB_IEBIT", "time_interest_earned_ratio", TableIndicator},
	{"LAB_LO", "long_term_debt_to_working_capital", TableIndicator},
	{"LAB_SRV", "net_debt_to_stock_right", TableIndicator},
	{"LAB_ISRV", "interest_bearing_debt_to_stock_right", TableIndicator},
	{"OPE_APR", "account_payable_turnover_rate", TableIndicator},
	{"OPE_APC", "account_payable_turnover_days", TableIndicator},
	{"OPE_ARC", "account_receivable_turnover_days", TableIndicator},
	{"OPE_STCI", "inventory_turnover", TableIndicator},
	{"OPE_ACI", "account_receivable_turnover_rate", TableIndicator},
	{"OPE_FAI", "current_asset_turnover", TableIndicator},
	{"OPE_FCI", "fixed_asset_turnover", TableIndicator},
	{"OPE_TAI", "total_asset_turnover", TableIndicator},
	{"RIS_EPS", "inc_earnings_per_share", TableIndicator},
	{"RIS_EPSD", "inc_diluted_earnings_per_share", TableIndicator},
	{"RIS_TR", "inc_revenue", TableIndicator},
	{"RIS_OR", "inc_operating_revenue", TableIndicator},
	{"RIS_OP", "inc_gross_profit", TableIndicator},
	{"RIS_TP", "inc_profit_before_tax", TableIndicator},
	{"RIS_MNP", "inc_net_profit", TableIndicator},
	{"RIS_MNPC", "inc_adjusted_net_profit", TableIndicator},
	{"RIS_NC", "inc_cash_from_operations", TableIndicator},
	{"RIS_ROE", "inc_return_on_equity", TableIndicator},
	{"RIS_NA", "inc_book_per_share", TableIndicator},
	{"RIS_TA", "inc_total_asset", TableIndicator},
	{"DU_ROE", "du_return_on_equity", TableIndicator},
	{"DU_RS", "du_equity_multiplier", TableIndicator},
	{"DU_TAC", "du_asset_turnover_ratio", TableIndicator},
	{"DU_NP_TP", "du_profit_margin", TableIndicator},
	{"DU_EBIT_OR", "du_return_on_sales", TableIndicator},
	{"INC_A", "non_recurring_profit_and_loss", TableIndicator},
	{"INC_B", "adjusted_net_profit", TableIndicator},
	{"INC_F", "ebit", TableIndicator},
	{"INC_G", "ebitda", TableIndicator},
	{"BAL_A", "invested_capital", TableIndicator},
	{"BAL_B", "working_capital", TableIndicator},
	{"BAL_C", "net_working_capital", TableIndicator},
	{"BAL_D", "tangible_assets", TableIndicator},
	{"BAL_E", "retained_earnings", TableIndicator},
	{"BAL_F", "interest_bearing_debt", TableIndicator},
	{"BAL_G", "net_debt", TableIndicator},
	{"BAL_H", "non_interest_bearing_current_debt", TableIndicator},
	{"BAL_I", "non_interest_bearing_non_current_debt", TableIndicator},
	{"BAL_J", "fcff", TableIndicator},
	{"BAL_K", "fcfe", TableIndicator},
	{"BAL_L", "depreciation_and_amortization", TableIndicator},
}

// QuarterTables returns the four quarter-source catalogues the Research
// stage merges, in a fixed, deterministic order (income, balance, cash
// flow, indicator) — on a collision the earlier source in this order keeps
// its value (see quarter.MergeRawRows), though with the
// single-source-per-metric invariant above no genuine collision can occur.
func QuarterTables() [][]MetricDef {
	return [][]MetricDef{IncomeMetrics, BalanceMetrics, CashFlowMetrics, IndicatorMetrics}
}

// SelectColumns returns the physical column names for a catalogue, in
// declaration order, for building extraction SQL.
func SelectColumns(defs []MetricDef) []string {
	cols := make([]string, len(defs))
	for i, d := range defs {
		cols[i] = d.PhysicalName
	}
	return cols
}

// CanonicalNames indexes a catalogue by physical name for fast lookup
// during row normalization.
func CanonicalNames(defs []MetricDef) map[string]string {
	m := make(map[string]string, len(defs))
	for _, d := range defs {
		m[d.PhysicalName] = d.CanonicalName
	}
	return m
}
