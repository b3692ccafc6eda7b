package extract

// nodeSpec describes how a single tree-sitter node type should be treated
// by the generic walker in walker.go.
type nodeSpec struct {
	// Kind, when non-empty, marks this node type as a definition. The
	// definition's name is taken from the child at NameField (or, if
	// NameField is empty, discovered heuristically — see walker.go).
	Kind Kind

	// NameField is the tree-sitter field name holding the identifier for a
	// definition node (most grammars expose "name"; a few need a different
	// field or a heuristic fallback, signaled by leaving this empty).
	NameField string

	// OpensScope marks this node type as introducing a new lexical scope
	// for its descendants.
	OpensScope bool
	ScopeKind  string

	// DirectChildKind marks every direct identifier-typed child of this
	// node type as a definition of the given kind, rather than a
	// reference. Used for parameter lists, where the grammar has no
	// distinct "parameter" node (e.g. Python's bare identifiers inside a
	// `parameters` node).
	DirectChildKind Kind
}

// langTable is the per-language node classification used by the generic
// walker: a static table per language tag in Supported
// (internal/extract/languages.go), keyed by the tree-sitter grammars'
// published node-type vocabularies.
type langTable struct {
	nodes       map[string]nodeSpec
	identifiers map[string]bool // leaf node types treated as bare identifiers
}

var langTables = map[string]*langTable{
	"go": {
		nodes: map[string]nodeSpec{
			"source_file":           {OpensScope: true, ScopeKind: "module"},
			"function_declaration":  {Kind: KindFunction, NameField: "name", OpensScope: true, ScopeKind: "function"},
			"method_declaration":    {Kind: KindMethod, NameField: "name", OpensScope: true, ScopeKind: "function"},
			"func_literal":          {OpensScope: true, ScopeKind: "function"},
			"type_spec":             {Kind: KindStruct, NameField: "name"},
			"parameter_declaration": {Kind: KindParameter, NameField: "name"},
			"var_spec":              {Kind: KindVariable, NameField: "name"},
			"const_spec":            {Kind: KindConstant, NameField: "name"},
			"field_declaration":     {Kind: KindField, NameField: "name"},
			"block":                 {OpensScope: true, ScopeKind: "block"},
			"import_spec":           {Kind: KindImport, NameField: "name"},
		},
		identifiers: set("identifier", "field_identifier", "type_identifier", "package_identifier"),
	},
	"python": {
		nodes: map[string]nodeSpec{
			"module":              {OpensScope: true, ScopeKind: "module"},
			"function_definition": {Kind: KindFunction, NameField: "name", OpensScope: true, ScopeKind: "function"},
			"class_definition":    {Kind: KindClass, NameField: "name", OpensScope: true, ScopeKind: "class"},
			"parameters":          {DirectChildKind: KindParameter},
			"block":               {OpensScope: true, ScopeKind: "block"},
		},
		identifiers: set("identifier"),
	},
	"javascript": {
		nodes: map[string]nodeSpec{
			"program":              {OpensScope: true, ScopeKind: "module"},
			"function_declaration": {Kind: KindFunction, NameField: "name", OpensScope: true, ScopeKind: "function"},
			"function":             {OpensScope: true, ScopeKind: "function"},
			"arrow_function":       {OpensScope: true, ScopeKind: "function"},
			"method_definition":    {Kind: KindMethod, NameField: "name", OpensScope: true, ScopeKind: "function"},
			"class_declaration":    {Kind: KindClass, NameField: "name", OpensScope: true, ScopeKind: "class"},
			"variable_declarator":  {Kind: KindVariable, NameField: "name"},
			"formal_parameters":    {DirectChildKind: KindParameter},
			"statement_block":      {OpensScope: true, ScopeKind: "block"},
		},
		identifiers: set("identifier", "property_identifier", "shorthand_property_identifier"),
	},
	"typescript": {
		nodes: map[string]nodeSpec{
			"program":              {OpensScope: true, ScopeKind: "module"},
			"function_declaration": {Kind: KindFunction, NameField: "name", OpensScope: true, ScopeKind: "function"},
			"function":             {OpensScope: true, ScopeKind: "function"},
			"arrow_function":       {OpensScope: true, ScopeKind: "function"},
			"method_definition":    {Kind: KindMethod, NameField: "name", OpensScope: true, ScopeKind: "function"},
			"class_declaration":    {Kind: KindClass, NameField: "name", OpensScope: true, ScopeKind: "class"},
			"interface_declaration": {Kind: KindInterface, NameField: "name", OpensScope: true, ScopeKind: "class"},
			"variable_declarator":  {Kind: KindVariable, NameField: "name"},
			"formal_parameters":    {DirectChildKind: KindParameter},
			"statement_block":      {OpensScope: true, ScopeKind: "block"},
		},
		identifiers: set("identifier", "property_identifier", "type_identifier", "shorthand_property_identifier"),
	},
	"rust": {
		nodes: map[string]nodeSpec{
			"source_file":  {OpensScope: true, ScopeKind: "module"},
			"function_item": {Kind: KindFunction, NameField: "name", OpensScope: true, ScopeKind: "function"},
			"struct_item":   {Kind: KindStruct, NameField: "name"},
			"enum_item":     {Kind: KindClass, NameField: "name"},
			"trait_item":    {Kind: KindInterface, NameField: "name", OpensScope: true, ScopeKind: "class"},
			"impl_item":     {OpensScope: true, ScopeKind: "class"},
			"parameter":     {Kind: KindParameter, NameField: "pattern"},
			"let_declaration": {Kind: KindVariable, NameField: "pattern"},
			"field_declaration": {Kind: KindField, NameField: "name"},
			"block":         {OpensScope: true, ScopeKind: "block"},
		},
		identifiers: set("identifier", "field_identifier", "type_identifier"),
	},
	"c": {
		nodes: map[string]nodeSpec{
			"translation_unit":     {OpensScope: true, ScopeKind: "module"},
			"function_definition":  {Kind: KindFunction, OpensScope: true, ScopeKind: "function"},
			"struct_specifier":     {Kind: KindStruct, NameField: "name"},
			"parameter_declaration": {Kind: KindParameter},
			"declaration":          {Kind: KindVariable},
			"field_declaration":    {Kind: KindField},
			"compound_statement":   {OpensScope: true, ScopeKind: "block"},
		},
		identifiers: set("identifier", "field_identifier", "type_identifier"),
	},
	"cpp": {
		nodes: map[string]nodeSpec{
			"translation_unit":     {OpensScope: true, ScopeKind: "module"},
			"function_definition":  {Kind: KindFunction, OpensScope: true, ScopeKind: "function"},
			"class_specifier":      {Kind: KindClass, NameField: "name", OpensScope: true, ScopeKind: "class"},
			"struct_specifier":     {Kind: KindStruct, NameField: "name", OpensScope: true, ScopeKind: "class"},
			"parameter_declaration": {Kind: KindParameter},
			"declaration":          {Kind: KindVariable},
			"field_declaration":    {Kind: KindField},
			"compound_statement":   {OpensScope: true, ScopeKind: "block"},
		},
		identifiers: set("identifier", "field_identifier", "type_identifier"),
	},
	"java": {
		nodes: map[string]nodeSpec{
			"program":              {OpensScope: true, ScopeKind: "module"},
			"method_declaration":   {Kind: KindMethod, NameField: "name", OpensScope: true, ScopeKind: "function"},
			"class_declaration":    {Kind: KindClass, NameField: "name", OpensScope: true, ScopeKind: "class"},
			"interface_declaration": {Kind: KindInterface, NameField: "name", OpensScope: true, ScopeKind: "class"},
			"formal_parameter":     {Kind: KindParameter, NameField: "name"},
			"variable_declarator":  {Kind: KindVariable, NameField: "name"},
			"field_declaration":    {Kind: KindField},
			"block":                {OpensScope: true, ScopeKind: "block"},
		},
		identifiers: set("identifier", "type_identifier"),
	},
	"php": {
		nodes: map[string]nodeSpec{
			"program":            {OpensScope: true, ScopeKind: "module"},
			"function_definition": {Kind: KindFunction, NameField: "name", OpensScope: true, ScopeKind: "function"},
			"method_declaration":  {Kind: KindMethod, NameField: "name", OpensScope: true, ScopeKind: "function"},
			"class_declaration":   {Kind: KindClass, NameField: "name", OpensScope: true, ScopeKind: "class"},
			"simple_parameter":    {Kind: KindParameter, NameField: "name"},
			"compound_statement":  {OpensScope: true, ScopeKind: "block"},
		},
		identifiers: set("name", "variable_name"),
	},
	"ruby": {
		nodes: map[string]nodeSpec{
			"program":           {OpensScope: true, ScopeKind: "module"},
			"method":             {Kind: KindMethod, NameField: "name", OpensScope: true, ScopeKind: "function"},
			"singleton_method":   {Kind: KindMethod, NameField: "name", OpensScope: true, ScopeKind: "function"},
			"class":              {Kind: KindClass, NameField: "name", OpensScope: true, ScopeKind: "class"},
			"module":             {Kind: KindClass, NameField: "name", OpensScope: true, ScopeKind: "class"},
			"method_parameters":  {DirectChildKind: KindParameter},
		},
		identifiers: set("identifier", "constant"),
	},
}

func set(vals ...string) map[string]bool {
	m := make(map[string]bool, len(vals))
	for _, v := range vals {
		m[v] = true
	}
	return m
}
