package analyzer

// Rule maps a display name to the dependency keys that identify it.
type Rule struct {
	Name    string   `json:"name" yaml:"name"`
	Aliases []string `json:"aliases" yaml:"aliases"`
}

// frameworkRules are scored: each alias present adds one point. Order is
// significant, the first rule wins a tie.
var frameworkRules = []Rule{
	// React ecosystem
	{Name: "Next.js", Aliases: []string{"next"}},
	{Name: "Remix", Aliases: []string{"@remix-run/react", "@remix-run/node"}},
	{Name: "Gatsby", Aliases: []string{"gatsby"}},

	// Vue ecosystem
	{Name: "Nuxt", Aliases: []string{"nuxt"}},
	{Name: "Vue", Aliases: []string{"vue"}},

	// Svelte ecosystem
	{Name: "SvelteKit", Aliases: []string{"@sveltejs/kit"}},
	{Name: "Svelte", Aliases: []string{"svelte"}},

	{Name: "Angular", Aliases: []string{"@angular/core"}},

	// Backend
	{Name: "Express", Aliases: []string{"express"}},
	{Name: "Fastify", Aliases: []string{"fastify"}},
	{Name: "NestJS", Aliases: []string{"@nestjs/core"}},
	{Name: "Koa", Aliases: []string{"koa"}},
	{Name: "Hapi", Aliases: []string{"@hapi/hapi"}},

	// Meta-frameworks and others
	{Name: "Astro", Aliases: []string{"astro"}},
	{Name: "SolidStart", Aliases: []string{"solid-start"}},
	{Name: "SolidJS", Aliases: []string{"solid-js"}},

	// Edge / serverless
	{Name: "Hono", Aliases: []string{"hono"}},
}

// toolRules are presence tests. Output order follows this table.
var toolRules = []Rule{
	// Language
	{Name: "TypeScript", Aliases: []string{"typescript"}},

	// Bundlers and dev servers
	{Name: "Vite", Aliases: []string{"vite"}},
	{Name: "Webpack", Aliases: []string{"webpack"}},
	{Name: "Rollup", Aliases: []string{"rollup"}},
	{Name: "Parcel", Aliases: []string{"parcel"}},
	{Name: "Turbopack", Aliases: []string{"@vercel/turbopack"}},

	// Styling
	{Name: "TailwindCSS", Aliases: []string{"tailwindcss"}},
	{Name: "PostCSS", Aliases: []string{"postcss"}},
	{Name: "Sass", Aliases: []string{"sass"}},
	{Name: "Styled Components", Aliases: []string{"styled-components"}},
	{Name: "Emotion", Aliases: []string{"@emotion/react", "@emotion/styled"}},

	// UI kits
	{Name: "shadcn/ui", Aliases: []string{"@radix-ui/react-dialog", "@radix-ui/react-dropdown-menu"}},
	{Name: "Radix UI", Aliases: []string{"@radix-ui/react-dialog"}},
	{Name: "Material UI", Aliases: []string{"@mui/material"}},
	{Name: "Chakra UI", Aliases: []string{"@chakra-ui/react"}},
	{Name: "Ant Design", Aliases: []string{"antd"}},

	// State and data fetching
	{Name: "Redux", Aliases: []string{"redux", "@reduxjs/toolkit"}},
	{Name: "Zustand", Aliases: []string{"zustand"}},
	{Name: "React Query (TanStack)", Aliases: []string{"@tanstack/react-query"}},
	{Name: "SWR", Aliases: []string{"swr"}},

	// Validation
	{Name: "Zod", Aliases: []string{"zod"}},
	{Name: "Yup", Aliases: []string{"yup"}},
	{Name: "Joi", Aliases: []string{"joi"}},

	// HTTP
	{Name: "Axios", Aliases: []string{"axios"}},

	// Auth
	{Name: "JWT", Aliases: []string{"jsonwebtoken"}},
	{Name: "Bcrypt", Aliases: []string{"bcrypt", "bcryptjs"}},
	{Name: "NextAuth", Aliases: []string{"next-auth"}},
	{Name: "Passport.js", Aliases: []string{"passport"}},

	// Database and ORM
	{Name: "Prisma", Aliases: []string{"prisma", "@prisma/client"}},
	{Name: "Drizzle ORM", Aliases: []string{"drizzle-orm"}},
	{Name: "TypeORM", Aliases: []string{"typeorm"}},
	{Name: "Sequelize", Aliases: []string{"sequelize"}},
	{Name: "Mongoose (MongoDB)", Aliases: []string{"mongoose"}},
	{Name: "MongoDB Driver", Aliases: []string{"mongodb"}},

	// Backend services
	{Name: "Firebase", Aliases: []string{"firebase"}},
	{Name: "Supabase", Aliases: []string{"@supabase/supabase-js"}},

	// Testing
	{Name: "Jest", Aliases: []string{"jest"}},
	{Name: "Vitest", Aliases: []string{"vitest"}},
	{Name: "Playwright", Aliases: []string{"playwright"}},
	{Name: "Cypress", Aliases: []string{"cypress"}},

	// Lint and format
	{Name: "ESLint", Aliases: []string{"eslint"}},
	{Name: "Prettier", Aliases: []string{"prettier"}},

	// Runtime. "node" is rarely a real dependency but the rule is kept.
	{Name: "Node.js", Aliases: []string{"node"}},
	{Name: "Bun", Aliases: []string{"bun"}},

	// GraphQL and RPC
	{Name: "GraphQL", Aliases: []string{"graphql"}},
	{Name: "Apollo", Aliases: []string{"@apollo/client", "apollo-server"}},
	{Name: "tRPC", Aliases: []string{"@trpc/server", "@trpc/client"}},

	// API docs
	{Name: "Swagger", Aliases: []string{"swagger-ui-express", "swagger-jsdoc"}},
}

// baseLibraryFallbacks assign a framework when no framework rule scored.
// Checked in order; the first present alias wins.
var baseLibraryFallbacks = []Rule{
	{Name: "React", Aliases: []string{"react"}},
	{Name: "Vue", Aliases: []string{"vue"}},
	{Name: "Svelte", Aliases: []string{"svelte"}},
}

// scriptMarker adds a tool when a substring appears in the script text.
type scriptMarker struct {
	substring string
	tool      string
}

var scriptMarkers = []scriptMarker{
	{substring: "ts-node", tool: "TypeScript"},
}

// FrameworkRules returns a copy of the framework rule table.
func FrameworkRules() []Rule {
	return cloneRules(frameworkRules)
}

// ToolRules returns a copy of the tool rule table.
func ToolRules() []Rule {
	return cloneRules(toolRules)
}

func cloneRules(rules []Rule) []Rule {
	out := make([]Rule, len(rules))
	for i, r := range rules {
		out[i] = Rule{
			Name:    r.Name,
			Aliases: append([]string(nil), r.Aliases...),
		}
	}
	return out
}
