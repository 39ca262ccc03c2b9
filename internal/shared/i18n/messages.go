package i18n

var catalog = map[string][2]string{
	// key: {ru, en}
	"app.title": {"Склад: заявки на материалы", "Stockdesk: material requests"},

	"nav.dashboard":  {"Заявки", "Tickets"},
	"nav.new_ticket": {"Новая заявка", "New ticket"},
	"nav.users":      {"Пользователи", "Users"},
	"nav.logout":     {"Выйти", "Log out"},
	"nav.back":       {"Назад", "Back"},

	"login.title":        {"Вход", "Sign in"},
	"login.username":     {"Логин", "Username"},
	"login.password":     {"Пароль", "Password"},
	"login.submit":       {"Войти", "Sign in"},
	"login.failed":       {"Неверный логин или пароль", "Invalid username or password"},
	"login.rate_limited": {"Слишком много попыток входа, попробуйте позже", "Too many login attempts, try again later"},
	"login.required":     {"Войдите в систему", "Please sign in"},
	"logout.done":        {"Вы вышли из системы", "You have been logged out"},

	"dashboard.title":      {"Заявки", "Tickets"},
	"dashboard.empty":      {"Заявок пока нет", "No tickets yet"},
	"dashboard.filter_all": {"Все статусы", "All statuses"},
	"dashboard.filter":     {"Показать", "Filter"},

	"ticket.id":               {"№", "#"},
	"ticket.project_name":     {"Объект", "Project"},
	"ticket.applicant_name":   {"Заявитель", "Applicant"},
	"ticket.applicant_phone":  {"Телефон", "Phone"},
	"ticket.status":           {"Статус", "Status"},
	"ticket.created_at":       {"Создана", "Created"},
	"ticket.pickup_at":        {"Материал забран", "Picked up at"},
	"ticket.pickup_recipient": {"Получатель", "Recipient"},
	"ticket.pickup_proof":     {"Подтверждение выдачи", "Pickup proof"},
	"ticket.closed_at":        {"Закрыта", "Closed at"},
	"ticket.created_by":       {"Автор", "Created by"},
	"ticket.description":      {"Описание", "Description"},
	"ticket.create":           {"Создать заявку", "Create ticket"},
	"ticket.created":          {"Заявка создана", "Ticket created"},
	"ticket.not_found":        {"Заявка не найдена", "Ticket not found"},
	"ticket.status_updated":   {"Статус обновлён", "Status updated"},
	"ticket.change_status":    {"Изменить статус", "Change status"},
	"ticket.save_status":      {"Сохранить", "Save"},
	"ticket.pickup_hint":      {"Заполняется при выдаче материала", "Filled in when material is handed over"},

	"comment.title":          {"Комментарии", "Comments"},
	"comment.empty":          {"Комментариев нет", "No comments"},
	"comment.text":           {"Комментарий", "Comment"},
	"comment.photo":          {"Фото", "Photo"},
	"comment.submit":         {"Добавить", "Add"},
	"comment.added":          {"Комментарий добавлен", "Comment added"},
	"comment.empty_rejected": {"Добавьте текст или фото", "Add text or a photo"},

	"access.denied":        {"Доступ запрещён", "Access denied"},
	"access.create_denied": {"Недостаточно прав для создания заявки", "You are not allowed to create tickets"},
	"access.role_denied":   {"Нет доступа для вашей роли", "Your role has no access to this page"},

	"error.title":       {"Ошибка", "Error"},
	"error.internal":    {"Внутренняя ошибка сервера", "Internal server error"},
	"error.not_found":   {"Страница не найдена", "Page not found"},
	"error.bad_request": {"Некорректный запрос", "Bad request"},
	"error.csrf":        {"Форма устарела, обновите страницу", "The form has expired, reload the page"},
	"upload.too_large":  {"Файл слишком большой", "File is too large"},

	"form.required": {"Обязательное поле", "This field is required"},
	"form.max":      {"Слишком длинное значение", "Value is too long"},
	"form.phone":    {"Некорректный номер телефона", "Invalid phone number"},
	"form.oneof":    {"Недопустимое значение", "Unsupported value"},
	"form.invalid":  {"Некорректное значение", "Invalid value"},

	"users.title":    {"Пользователи", "Users"},
	"users.username": {"Логин", "Username"},
	"users.role":     {"Роль", "Role"},

	"role.applicant": {"Заявитель", "Applicant"},
	"role.stockman":  {"Кладовщик", "Stockman"},
	"role.manager":   {"Менеджер", "Manager"},
	"role.admin":     {"Администратор", "Administrator"},

	"status.new":                {"Новая", "New"},
	"status.in_progress":        {"В работе", "In progress"},
	"status.awaiting_materials": {"Ожидает материалов", "Awaiting materials"},
	"status.ready_for_pickup":   {"Готово к выдаче", "Ready for pickup"},
	"status.picked_up":          {"Материал забран", "Picked up"},
	"status.closed":             {"Закрыта", "Closed"},
}

// T returns the message for key in lang, or the key itself when it is unknown.
func T(lang Lang, key string) string {
	entry, ok := catalog[key]
	if !ok {
		return key
	}
	if lang == EN {
		return entry[1]
	}
	return entry[0]
}

// Has reports whether key exists in the catalog.
func Has(key string) bool {
	_, ok := catalog[key]
	return ok
}
