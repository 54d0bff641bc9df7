package plan

// Category es una categoría de recurso medida por cuota. Enumeración cerrada:
// una categoría no listada en la tabla de límites es un error de programación,
// no un fallthrough silencioso.
type Category string

const (
	CategoryProjects       Category = "projects"
	CategoryTasks          Category = "tasks"
	CategoryBoards         Category = "boards"
	CategoryTeams          Category = "teams"
	CategoryMembers        Category = "members" // miembros + invitaciones pendientes
	CategoryCalendarEvents Category = "calendar_events"
	CategoryChat           Category = "chat"
	CategoryIntegrations   Category = "integrations"
	CategoryBoots          Category = "boots" // requests al asistente, ventana = período de cobro actual
	CategoryAnalytics      Category = "analytics" // feature gate booleano, no un conteo
)

// Ceiling techo numérico de una categoría. Unlimited (-1) = sin límite.
// El techo es una cota superior exclusiva: con techo N, la creación N+1 se rechaza
// cuando ya existen N unidades.
type Ceiling int

// Unlimited centinela de techo infinito.
const Unlimited Ceiling = -1

// IsUnlimited informa si el techo es infinito.
func (c Ceiling) IsUnlimited() bool {
	return c == Unlimited
}

// Allows informa si con `current` unidades existentes se admite crear una más.
func (c Ceiling) Allows(current int) bool {
	if c.IsUnlimited() {
		return true
	}
	return current < int(c)
}

// Limits techos por categoría de un plan, más parámetros no-conteo
// (retención de actividad en días y gate de analytics).
type Limits struct {
	Projects       Ceiling
	Tasks          Ceiling
	Boards         Ceiling
	Teams          Ceiling
	Members        Ceiling
	CalendarEvents Ceiling
	Chat           Ceiling
	Integrations   Ceiling
	Boots          Ceiling // por período de cobro
	RetentionDays  int     // días de historial de actividad visibles
	Analytics      bool
}

// Tabla estática de límites. No se persiste por tenant: el plan del workspace
// es la única entrada y la tabla es de solo lectura a runtime.
var limitsTable = map[Plan]Limits{
	Free: {
		Projects:       3,
		Tasks:          100,
		Boards:         3,
		Teams:          1,
		Members:        5,
		CalendarEvents: 50,
		Chat:           500,
		Integrations:   1,
		Boots:          10,
		RetentionDays:  7,
		Analytics:      false,
	},
	Pro: {
		Projects:       50,
		Tasks:          5000,
		Boards:         50,
		Teams:          10,
		Members:        25,
		CalendarEvents: 1000,
		Chat:           10000,
		Integrations:   5,
		Boots:          200,
		RetentionDays:  30,
		Analytics:      true,
	},
	Growth: {
		Projects:       200,
		Tasks:          Unlimited,
		Boards:         200,
		Teams:          50,
		Members:        100,
		CalendarEvents: Unlimited,
		Chat:           Unlimited,
		Integrations:   20,
		Boots:          1000,
		RetentionDays:  90,
		Analytics:      true,
	},
	ThetaPlus: {
		Projects:       Unlimited,
		Tasks:          Unlimited,
		Boards:         Unlimited,
		Teams:          Unlimited,
		Members:        Unlimited,
		CalendarEvents: Unlimited,
		Chat:           Unlimited,
		Integrations:   Unlimited,
		Boots:          5000,
		RetentionDays:  365,
		Analytics:      true,
	},
	Lifetime: {
		Projects:       Unlimited,
		Tasks:          Unlimited,
		Boards:         Unlimited,
		Teams:          Unlimited,
		Members:        Unlimited,
		CalendarEvents: Unlimited,
		Chat:           Unlimited,
		Integrations:   Unlimited,
		Boots:          2000,
		RetentionDays:  365,
		Analytics:      true,
	},
}

// LimitsFor devuelve los límites del plan. Plan desconocido → límites de Free.
func LimitsFor(p Plan) Limits {
	if l, ok := limitsTable[p]; ok {
		return l
	}
	return limitsTable[Free]
}

// CeilingFor devuelve el techo de una categoría de conteo bajo un plan.
// CategoryAnalytics no es un conteo; para ella devuelve 0 si el gate está
// apagado y Unlimited si está encendido.
func CeilingFor(p Plan, c Category) Ceiling {
	l := LimitsFor(p)
	switch c {
	case CategoryProjects:
		return l.Projects
	case CategoryTasks:
		return l.Tasks
	case CategoryBoards:
		return l.Boards
	case CategoryTeams:
		return l.Teams
	case CategoryMembers:
		return l.Members
	case CategoryCalendarEvents:
		return l.CalendarEvents
	case CategoryChat:
		return l.Chat
	case CategoryIntegrations:
		return l.Integrations
	case CategoryBoots:
		return l.Boots
	case CategoryAnalytics:
		if l.Analytics {
			return Unlimited
		}
		return 0
	default:
		// Categoría fuera de la enumeración: fail closed.
		return 0
	}
}
