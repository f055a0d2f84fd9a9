package manifest

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/fastforge/fastforge/internal/wizard"
	"github.com/fastforge/fastforge/pkg/schema"
)

// renderer produces file contents. Every render function is a pure function
// of the project name plus either the resolved options or a single scaffold.
type renderer struct {
	engine *TemplateEngine
}

func newRenderer() *renderer {
	return &renderer{engine: NewTemplateEngine()}
}

// jsValue renders a resolved value as a JavaScript literal.
func jsValue(value any) string {
	switch v := value.(type) {
	case string:
		return "'" + strings.ReplaceAll(v, "'", "\\'") + "'"
	default:
		return fmt.Sprint(v)
	}
}

// camel converts a hyphenated identifier to camelCase for use as a
// JavaScript name.
func camel(name string) string {
	parts := strings.Split(name, "-")
	out := parts[0]
	for _, part := range parts[1:] {
		if part == "" {
			continue
		}
		out += strings.ToUpper(part[:1]) + part[1:]
	}
	return out
}

const appTemplate = `'use strict'

const path = require('node:path')
const AutoLoad = require('@fastify/autoload')
const Fastify = require('fastify')

const options = {
{options_block}
}

const app = Fastify(options)

app.register(AutoLoad, {
  dir: path.join(__dirname, 'plugins'),
  options: {}
})

app.register(AutoLoad, {
  dir: path.join(__dirname, 'routes'),
  options: {routes_options}
})
{shutdown_block}
app.listen({listen_options}, (err) => {
  if (err) {
    app.log.error(err)
    process.exit(1)
  }
})
`

// appJS renders the entry point. Unset optional values omit their line
// entirely instead of emitting a null marker.
func (r *renderer) appJS(opts schema.ResolvedOptions) (string, error) {
	var lines []string

	level, hasLevel := opts[schema.KeyLogLevel].(string)
	pretty, _ := opts[schema.KeyPrettyLogs].(bool)
	switch {
	case hasLevel && pretty:
		lines = append(lines,
			"  logger: {",
			fmt.Sprintf("    level: %s,", jsValue(level)),
			"    transport: { target: 'pino-pretty' }",
			"  },")
	case hasLevel:
		lines = append(lines,
			"  logger: {",
			fmt.Sprintf("    level: %s", jsValue(level)),
			"  },")
	case pretty:
		lines = append(lines,
			"  logger: {",
			"    transport: { target: 'pino-pretty' }",
			"  },")
	default:
		lines = append(lines, "  logger: true,")
	}

	if requestLogging, ok := opts[schema.KeyRequestLogging].(bool); ok {
		lines = append(lines, fmt.Sprintf("  disableRequestLogging: %v,", !requestLogging))
	}
	if bodyLimit, ok := opts[schema.KeyBodyLimit].(int); ok {
		lines = append(lines, fmt.Sprintf("  bodyLimit: %d,", bodyLimit))
	}
	if pluginTimeout, ok := opts[schema.KeyPluginTimeout].(int); ok {
		lines = append(lines, fmt.Sprintf("  pluginTimeout: %d,", pluginTimeout))
	}
	if effective := opts[schema.KeyTrustProxyEffective]; effective != nil {
		lines = append(lines, fmt.Sprintf("  trustProxy: %s,", jsValue(effective)))
	}

	routesOptions := "{}"
	if prefix, ok := opts[schema.KeyRoutePrefix].(string); ok {
		routesOptions = fmt.Sprintf("{ prefix: %s }", jsValue(prefix))
	}

	var listenFields []string
	if port, ok := opts[schema.KeyPort].(int); ok {
		listenFields = append(listenFields, fmt.Sprintf("port: %d", port))
	}
	if host, ok := opts[schema.KeyHost].(string); ok {
		listenFields = append(listenFields, fmt.Sprintf("host: %s", jsValue(host)))
	}
	listenOptions := "{}"
	if len(listenFields) > 0 {
		listenOptions = "{ " + strings.Join(listenFields, ", ") + " }"
	}

	shutdownBlock := ""
	if grace, ok := opts[schema.KeyCloseGrace].(int); ok {
		shutdownBlock = fmt.Sprintf(`
process.on('SIGTERM', () => {
  setTimeout(() => process.exit(1), %d).unref()
  app.close()
})
`, grace)
	}

	return r.engine.Render(appTemplate, map[string]any{
		"options_block":  strings.Join(lines, "\n"),
		"routes_options": routesOptions,
		"listen_options": listenOptions,
		"shutdown_block": shutdownBlock,
	})
}

const packageTemplate = `{
  "name": "{project}",
  "version": "0.1.0",
  "private": true,
  "type": "commonjs",
  "scripts": {
{scripts_block}
  },
  "dependencies": {
    "@fastify/autoload": "^6.0.0",
    "@fastify/sensible": "^6.0.0",
    "fastify": "^5.0.0",
    "fastify-plugin": "^5.0.0"{pretty_dep}
  }
}
`

// packageJSON renders package.json. Debug and watch options surface as npm
// scripts rather than runtime options.
func (r *renderer) packageJSON(project string, opts schema.ResolvedOptions) (string, error) {
	scripts := []string{
		`    "start": "node app.js"`,
		`    "test": "node --test test"`,
	}
	if debug, ok := opts[schema.KeyDebug].(bool); ok && debug {
		inspect := "--inspect"
		host, hasHost := opts[schema.KeyDebugHost].(string)
		port, hasPort := opts[schema.KeyDebugPort].(int)
		if hasHost && hasPort {
			inspect = fmt.Sprintf("--inspect=%s:%d", host, port)
		} else if hasPort {
			inspect = fmt.Sprintf("--inspect=%d", port)
		}
		scripts = append(scripts, fmt.Sprintf(`    "debug": "node %s app.js"`, inspect))
	}
	if watch, ok := opts[schema.KeyWatch].(bool); ok && watch {
		scripts = append(scripts, `    "dev": "node --watch app.js"`)
	}

	prettyDep := ""
	if pretty, ok := opts[schema.KeyPrettyLogs].(bool); ok && pretty {
		prettyDep = ",\n    \"pino-pretty\": \"^11.0.0\""
	}

	return r.engine.Render(packageTemplate, map[string]any{
		"project":       project,
		"scripts_block": strings.Join(scripts, ",\n"),
		"pretty_dep":    prettyDep,
	})
}

// projectYAML records the resolved configuration inside the generated
// project. Unset options are omitted.
func (r *renderer) projectYAML(project string, opts schema.ResolvedOptions) (string, error) {
	recorded := make(map[string]any)
	for key, value := range opts {
		if value != nil {
			recorded[key] = value
		}
	}
	doc := map[string]any{
		"project": project,
		"options": recorded,
	}
	data, err := yaml.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("failed to render project metadata: %w", err)
	}
	return "# Generated by fastforge. Records the choices made at scaffold time.\n" + string(data), nil
}

const readmeTemplate = `# {project}

A Fastify server scaffolded by fastforge.

## Getting started

` + "```sh" + `
npm install
npm start
` + "```" + `

The server listens on {{ port != nil && host != nil ? "http://" + host + ":" + string(port) : "the default Fastify address" }}. Routes live under ` + "`routes/`" + `,
shared plugins under ` + "`plugins/`" + `. Both directories are loaded
automatically at startup.

## Tests

` + "```sh" + `
npm test
` + "```" + `
`

func (r *renderer) readme(project string, opts schema.ResolvedOptions) (string, error) {
	return r.engine.Render(readmeTemplate, map[string]any{
		"project": project,
		"port":    opts[schema.KeyPort],
		"host":    opts[schema.KeyHost],
	})
}

const gitignoreContent = `node_modules/
*.log
.env
`

const editorconfigContent = `root = true

[*]
charset = utf-8
end_of_line = lf
indent_size = 2
indent_style = space
insert_final_newline = true
`

const pluginsReadmeContent = `# Plugins

Plugins in this directory are loaded automatically and shared across the
whole application. Use them for decorators, hooks and anything else every
route should see.
`

const supportPluginContent = `'use strict'

const fp = require('fastify-plugin')

module.exports = fp(async function (fastify, opts) {
  fastify.decorate('someSupport', function () {
    return 'hugs'
  })
})
`

const routesReadmeContent = `# Routes

Every file in this directory registers routes against the application. The
folder structure mirrors the URL structure.
`

const rootRouteContent = `'use strict'

module.exports = async function (fastify, opts) {
  fastify.get('/', async function (request, reply) {
    return { root: true }
  })
}
`

const testHelperContent = `'use strict'

const path = require('node:path')
const AutoLoad = require('@fastify/autoload')
const Fastify = require('fastify')

async function build () {
  const app = Fastify()
  app.register(AutoLoad, { dir: path.join(__dirname, '..', 'plugins') })
  app.register(AutoLoad, { dir: path.join(__dirname, '..', 'routes') })
  await app.ready()
  return app
}

module.exports = { build }
`

const supportTestContent = `'use strict'

const { test } = require('node:test')
const assert = require('node:assert')
const { build } = require('../helper')

test('support plugin decorates the app', async (t) => {
  const app = await build()
  t.after(() => app.close())
  assert.equal(app.someSupport(), 'hugs')
})
`

const rootTestContent = `'use strict'

const { test } = require('node:test')
const assert = require('node:assert')
const { build } = require('../helper')

test('root route replies', async (t) => {
  const app = await build()
  t.after(() => app.close())
  const res = await app.inject({ method: 'GET', url: '/' })
  assert.equal(res.statusCode, 200)
  assert.deepEqual(res.json(), { root: true })
})
`

const pluginIndexTemplate = `'use strict'

const fp = require('fastify-plugin')

module.exports = fp(async function {fn_name} (fastify, opts) {
{register_block}
}, { name: '{plugin}' })
`

// pluginIndex renders a scaffold's entry file. An empty scaffold produces a
// no-op variant whose body says so.
func (r *renderer) pluginIndex(sc wizard.PluginScaffold) (string, error) {
	var registers []string
	if sc.HasDecorator {
		registers = append(registers, "  await fastify.register(require('./decorator'))")
	}
	for _, hook := range sc.Hooks {
		registers = append(registers, fmt.Sprintf("  await fastify.register(require('./hooks/%s'))", hook))
	}
	for _, route := range sc.Routes {
		registers = append(registers, fmt.Sprintf("  await fastify.register(require('./routes/%s'), { prefix: '/%s' })", route, sc.Name))
	}
	if sc.ChildName != "" {
		registers = append(registers, fmt.Sprintf("  await fastify.register(require('./plugins/%s'))", sc.ChildName))
	}
	registerBlock := "  // Base plugin only. Nothing to register yet."
	if len(registers) > 0 {
		registerBlock = strings.Join(registers, "\n")
	}
	return r.engine.Render(pluginIndexTemplate, map[string]any{
		"plugin":         sc.Name,
		"fn_name":        camel(sc.Name) + "Plugin",
		"register_block": registerBlock,
	})
}

const routeTemplate = `'use strict'

module.exports = async function (fastify, opts) {
  fastify.get('/{route}', async function (request, reply) {
    return { plugin: '{plugin}', route: '{route}' }
  })
}
`

func (r *renderer) routeFile(sc wizard.PluginScaffold, route string) (string, error) {
	return r.engine.Render(routeTemplate, map[string]any{
		"plugin": sc.Name,
		"route":  route,
	})
}

const hookTemplate = `'use strict'

const fp = require('fastify-plugin')

module.exports = fp(async function (fastify, opts) {
  fastify.addHook('onRequest', async function (request, reply) {
    request.log.debug('{plugin}:{hook} hook fired')
  })
}, { name: '{plugin}-{hook}-hook' })
`

func (r *renderer) hookFile(sc wizard.PluginScaffold, hook string) (string, error) {
	return r.engine.Render(hookTemplate, map[string]any{
		"plugin": sc.Name,
		"hook":   hook,
	})
}

const decoratorTemplate = `'use strict'

const fp = require('fastify-plugin')

module.exports = fp(async function (fastify, opts) {
  fastify.decorate('{fn_name}', function () {
    return '{plugin}'
  })
}, { name: '{plugin}-decorator' })
`

func (r *renderer) decoratorFile(sc wizard.PluginScaffold) (string, error) {
	return r.engine.Render(decoratorTemplate, map[string]any{
		"plugin":  sc.Name,
		"fn_name": camel(sc.Name),
	})
}

const childPluginTemplate = `'use strict'

const fp = require('fastify-plugin')

module.exports = fp(async function {fn_name} (fastify, opts) {
  fastify.decorate('{fn_name}', function () {
    return '{{ parent + " > " + child }}'
  })
}, { name: '{child}' })
`

func (r *renderer) childPluginFile(sc wizard.PluginScaffold) (string, error) {
	return r.engine.Render(childPluginTemplate, map[string]any{
		"parent":  sc.Name,
		"child":   sc.ChildName,
		"fn_name": camel(sc.ChildName),
	})
}
