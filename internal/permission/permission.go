package permission

type Role string

const (
	RoleAdmin       Role = "Admin"
	RoleSupervisor  Role = "Supervisor"
	RoleColaborador Role = "Colaborador"
)

var AllRoles = []Role{RoleAdmin, RoleSupervisor, RoleColaborador}

func (r Role) IsValid() bool {
	for _, v := range AllRoles {
		if r == v {
			return true
		}
	}
	return false
}

const (
	DashboardView       = "dashboard.view"
	OnboardingView      = "onboarding.view"
	LibraryView         = "library.view"
	LinksView           = "links.view"
	InstitutionalView   = "institutional.view"
	QuizzesView         = "quizzes.view"
	QuizzesTake         = "quizzes.take"
	QuizzesCreate       = "quizzes.create"
	QuizzesResultsView  = "quizzes.results.view"
	AdminUsersManage    = "admin.users.manage"
	AdminContentsManage = "admin.contents.manage"
	AdminQuizzesManage  = "admin.quizzes.manage"
	AnalyticsView       = "analytics.view"
)

var All = []string{
	DashboardView,
	OnboardingView,
	LibraryView,
	LinksView,
	InstitutionalView,
	QuizzesView,
	QuizzesTake,
	QuizzesCreate,
	QuizzesResultsView,
	AdminUsersManage,
	AdminContentsManage,
	AdminQuizzesManage,
	AnalyticsView,
}

var rolePermissions = map[Role][]string{
	RoleAdmin: {
		DashboardView, OnboardingView, LibraryView, LinksView, InstitutionalView,
		QuizzesView, QuizzesTake, QuizzesCreate, QuizzesResultsView,
		AdminUsersManage, AdminContentsManage, AdminQuizzesManage, AnalyticsView,
	},
	RoleSupervisor: {
		DashboardView, OnboardingView, LibraryView, LinksView, InstitutionalView,
		QuizzesView, QuizzesTake, QuizzesResultsView,
		// quizzes.create e analytics.view entram por override (allow)
	},
	RoleColaborador: {
		DashboardView, OnboardingView, LibraryView, LinksView, InstitutionalView,
		QuizzesView, QuizzesTake,
	},
}

// Override ajusta as permissões base do papel por usuário. Deny vence Allow.
type Override struct {
	Allow []string `json:"allow"`
	Deny  []string `json:"deny"`
}

type Set map[string]struct{}

func (s Set) Has(perm string) bool {
	_, ok := s[perm]
	return ok
}

func Effective(role Role, override Override) Set {
	set := make(Set)
	for _, p := range rolePermissions[role] {
		set[p] = struct{}{}
	}
	for _, p := range override.Allow {
		set[p] = struct{}{}
	}
	for _, p := range override.Deny {
		delete(set, p)
	}
	return set
}
