package handler

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/cloud-wave-best-zizon/till-service/internal/domain"
	"github.com/cloud-wave-best-zizon/till-service/internal/service"
	"github.com/cloud-wave-best-zizon/till-service/pkg/money"
	"github.com/spf13/cast"
	"go.uber.org/zap"
)

// Notifier receives the notifications the handler raises for rejected
// commands.
type Notifier interface {
	PublishNotification(n domain.Notification)
}

// ConsoleHandler drives a till session from text commands, one per line.
type ConsoleHandler struct {
	session    *service.Session
	till       *service.TillService
	catalogs   *service.CatalogService
	reports    *service.ReportService
	notifier   Notifier
	money      *money.Formatter
	out        io.Writer
	logger     *zap.Logger
	reportDays int
	now        func() time.Time
}

type Deps struct {
	Session    *service.Session
	Till       *service.TillService
	Catalogs   *service.CatalogService
	Reports    *service.ReportService
	Notifier   Notifier
	Money      *money.Formatter
	Out        io.Writer
	Logger     *zap.Logger
	ReportDays int
}

func NewConsoleHandler(d Deps) *ConsoleHandler {
	if d.ReportDays < 1 {
		d.ReportDays = service.DefaultReportDays
	}
	return &ConsoleHandler{
		session:    d.Session,
		till:       d.Till,
		catalogs:   d.Catalogs,
		reports:    d.Reports,
		notifier:   d.Notifier,
		money:      d.Money,
		out:        d.Out,
		logger:     d.Logger,
		reportDays: d.ReportDays,
		now:        time.Now,
	}
}

// Handle runs one command line. It reports false once the operator asks to
// quit. Command failures are surfaced as notifications, never returned.
func (h *ConsoleHandler) Handle(ctx context.Context, line string) bool {
	cmd, args := splitCommand(line)
	if cmd == "" {
		return true
	}

	var err error
	switch cmd {
	case "quit", "exit":
		return false
	case "help":
		h.printHelp()
	case "login":
		err = h.login(ctx, args)
	case "logout":
		h.session.Logout()
		fmt.Fprintln(h.out, "Déconnecté.")
	case "whoami":
		err = h.whoami()
	case "sell", "vente":
		err = h.sell(ctx, args)
	case "money":
		err = h.transfer(ctx, args)
	case "bill":
		err = h.bill(ctx, args)
	case "office":
		err = h.office(ctx, args)
	case "other":
		err = h.other(ctx, args)
	case "products":
		h.printProducts(ctx)
	case "services":
		h.printServices(ctx)
	case "operators":
		h.printOperators()
	case "today":
		err = h.today(ctx)
	case "report":
		err = h.report(ctx, args)
	case "lowstock":
		err = h.lowStock(ctx)
	case "addproduct":
		err = h.addProduct(ctx, args)
	case "editproduct":
		err = h.editProduct(ctx, args)
	case "rmproduct":
		err = h.removeProduct(ctx, args)
	case "setservice":
		err = h.setService(ctx, args)
	case "rmservice":
		err = h.removeService(ctx, args)
	default:
		err = fmt.Errorf("%w: %q", errUnknownCommand, cmd)
	}

	if err != nil {
		h.fail(err)
	}
	return true
}

func (h *ConsoleHandler) login(ctx context.Context, args string) error {
	user, err := h.session.Login(ctx, strings.TrimSpace(args))
	if err != nil {
		return err
	}
	fmt.Fprintf(h.out, "Bienvenue, %s (%s)\n", user.Name, user.Role)
	return nil
}

func (h *ConsoleHandler) whoami() error {
	user, err := h.session.User()
	if err != nil {
		return err
	}
	fmt.Fprintf(h.out, "%s (%s) session %s\n", user.Name, user.Role, h.session.ID())
	return nil
}

// sell <productID> [quantity]
func (h *ConsoleHandler) sell(ctx context.Context, args string) error {
	user, err := h.session.User()
	if err != nil {
		return err
	}

	fields := strings.Fields(args)
	if len(fields) == 0 || len(fields) > 2 {
		return usage("sell <produit> [quantité]")
	}
	quantity := 1
	if len(fields) == 2 {
		if quantity, err = parseCount(fields[1]); err != nil {
			return domain.ErrInvalidQuantity
		}
	}

	result, err := h.till.RecordSale(ctx, user, fields[0], quantity)
	if err != nil {
		return err
	}
	fmt.Fprintf(h.out, "%s  %s\n", result.Transaction.ID, result.Transaction.Description)
	return nil
}

// money <in|out> <amount> <operator...>
func (h *ConsoleHandler) transfer(ctx context.Context, args string) error {
	fields := strings.Fields(args)
	if len(fields) < 3 {
		return usage("money <in|out> <montant> <opérateur>")
	}
	return h.recordService(ctx, domain.ServiceRequest{
		Kind:     domain.ServiceMoney,
		Flow:     domain.Flow(strings.ToUpper(fields[0])),
		Amount:   fields[1],
		Operator: strings.Join(fields[2:], " "),
	})
}

// bill <amount> <operator...>
func (h *ConsoleHandler) bill(ctx context.Context, args string) error {
	fields := strings.Fields(args)
	if len(fields) < 2 {
		return usage("bill <montant> <opérateur>")
	}
	return h.recordService(ctx, domain.ServiceRequest{
		Kind:     domain.ServiceBills,
		Amount:   fields[0],
		Operator: strings.Join(fields[1:], " "),
	})
}

// office <quantity> <service...> [= <amount>]
func (h *ConsoleHandler) office(ctx context.Context, args string) error {
	head, amount, _ := strings.Cut(args, "=")
	fields := strings.Fields(head)
	if len(fields) < 2 {
		return usage("office <quantité> <service> [= <montant>]")
	}
	quantity, err := parseCount(fields[0])
	if err != nil {
		return domain.ErrInvalidQuantity
	}
	return h.recordService(ctx, domain.ServiceRequest{
		Kind:     domain.ServiceOffice,
		Quantity: quantity,
		Operator: strings.Join(fields[1:], " "),
		Amount:   strings.TrimSpace(amount),
	})
}

// other <amount> [details...]
func (h *ConsoleHandler) other(ctx context.Context, args string) error {
	fields := strings.Fields(args)
	if len(fields) == 0 {
		return usage("other <montant> [détails]")
	}
	return h.recordService(ctx, domain.ServiceRequest{
		Kind:    domain.ServiceOther,
		Amount:  fields[0],
		Details: strings.Join(fields[1:], " "),
	})
}

func (h *ConsoleHandler) recordService(ctx context.Context, req domain.ServiceRequest) error {
	user, err := h.session.User()
	if err != nil {
		return err
	}
	result, err := h.till.RecordServiceTransaction(ctx, user, req)
	if err != nil {
		return err
	}
	fmt.Fprintf(h.out, "%s  %s\n", result.Transaction.ID, result.Transaction.Description)
	return nil
}

func (h *ConsoleHandler) today(ctx context.Context) error {
	if _, err := h.session.User(); err != nil {
		return err
	}

	day := h.reports.Today()
	totals := h.reports.DailyTotals(ctx, day)
	fmt.Fprintf(h.out, "Entrées %s | Sorties %s | Solde %s\n",
		h.money.Format(totals.CashIn), h.money.Format(totals.CashOut), h.money.Format(totals.Balance))

	txs := h.reports.DayTransactions(ctx, day)
	if len(txs) == 0 {
		fmt.Fprintln(h.out, "Aucune transaction aujourd'hui.")
		return nil
	}
	w := tabwriter.NewWriter(h.out, 0, 0, 2, ' ', 0)
	for _, tx := range txs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			tx.Timestamp.In(day.Location()).Format("15:04"),
			tx.ID,
			tx.Type.Label(),
			tx.Description,
			h.money.Signed(tx.Amount, tx.Flow == domain.FlowIn),
			tx.PerformerName)
	}
	return w.Flush()
}

// report [days]
func (h *ConsoleHandler) report(ctx context.Context, args string) error {
	if _, err := h.session.User(); err != nil {
		return err
	}

	days := h.reportDays
	if raw := strings.TrimSpace(args); raw != "" {
		n, err := parseCount(raw)
		if err != nil || n < 1 {
			return usage("report [jours]")
		}
		days = n
	}

	reports := h.reports.WindowTotals(ctx, h.reports.TrailingDays(days))
	w := tabwriter.NewWriter(h.out, 0, 0, 2, ' ', tabwriter.AlignRight)
	for _, r := range reports {
		marker := ""
		if !r.HasActivity {
			marker = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t\n", r.DayStart.Format("02/01"), h.money.Format(r.CashIn), h.money.Format(r.CashOut), marker)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	summary := h.reports.Summarize(reports)
	fmt.Fprintf(h.out, "Total %s / %s | Solde %s | Moyenne %s\n",
		h.money.Format(summary.TotalIn),
		h.money.Format(summary.TotalOut),
		h.money.Format(summary.Balance),
		h.money.Format(int64(summary.MeanDailyIn)))
	if !summary.BestDay.IsZero() {
		fmt.Fprintf(h.out, "Meilleur jour %s : %s\n", summary.BestDay.Format("02/01"), h.money.Format(summary.BestDayIn))
	}
	return nil
}

func (h *ConsoleHandler) lowStock(ctx context.Context) error {
	if _, err := h.session.User(); err != nil {
		return err
	}
	report := h.reports.LowStockReport(ctx)
	for _, p := range report.Items {
		fmt.Fprintf(h.out, "%s  %s  %d\n", p.ID, p.Name, p.Stock)
	}
	return nil
}

func (h *ConsoleHandler) printProducts(ctx context.Context) {
	w := tabwriter.NewWriter(h.out, 0, 0, 2, ' ', 0)
	for _, p := range h.catalogs.ListProducts(ctx) {
		flag := ""
		if p.IsLowStock() {
			flag = "!"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%s\n", p.ID, p.Name, p.Category, h.money.Format(p.Price), p.Stock, flag)
	}
	w.Flush()
}

func (h *ConsoleHandler) printServices(ctx context.Context) {
	w := tabwriter.NewWriter(h.out, 0, 0, 2, ' ', 0)
	for _, s := range h.catalogs.ListServices(ctx) {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", s.ID, s.Name, s.Category, h.money.Format(s.Price))
	}
	w.Flush()
}

func (h *ConsoleHandler) printOperators() {
	fmt.Fprintf(h.out, "Transfert : %s\n", strings.Join(domain.MoneyOperators, ", "))
	fmt.Fprintf(h.out, "Factures  : %s\n", strings.Join(domain.BillOperators, ", "))
}

// addproduct <name>|<price>|<stock>|<category>[|<id>]
func (h *ConsoleHandler) addProduct(ctx context.Context, args string) error {
	user, err := h.session.User()
	if err != nil {
		return err
	}
	parts := splitPipe(args)
	if len(parts) < 4 || len(parts) > 5 {
		return usage("addproduct <nom>|<prix>|<stock>|<catégorie>[|<id>]")
	}
	product, err := productFromParts(parts[0], parts[1], parts[2], parts[3])
	if err != nil {
		return err
	}
	if len(parts) == 5 {
		product.ID = parts[4]
	}

	list, err := h.catalogs.AddProduct(ctx, user, product)
	if err != nil {
		return err
	}
	fmt.Fprintf(h.out, "%s ajouté (%d produits)\n", list[0].ID, len(list))
	return nil
}

// editproduct <id>|<name>|<price>|<stock>|<category>
func (h *ConsoleHandler) editProduct(ctx context.Context, args string) error {
	user, err := h.session.User()
	if err != nil {
		return err
	}
	parts := splitPipe(args)
	if len(parts) != 5 {
		return usage("editproduct <id>|<nom>|<prix>|<stock>|<catégorie>")
	}
	product, err := productFromParts(parts[1], parts[2], parts[3], parts[4])
	if err != nil {
		return err
	}
	product.ID = parts[0]

	_, err = h.catalogs.UpdateProduct(ctx, user, product)
	return err
}

func (h *ConsoleHandler) removeProduct(ctx context.Context, args string) error {
	user, err := h.session.User()
	if err != nil {
		return err
	}
	id := strings.TrimSpace(args)
	if id == "" {
		return usage("rmproduct <id>")
	}
	_, err = h.catalogs.RemoveProduct(ctx, user, id)
	return err
}

// setservice <name>|<price>[|office|other] adds or reprices one entry of the
// price list.
func (h *ConsoleHandler) setService(ctx context.Context, args string) error {
	user, err := h.session.User()
	if err != nil {
		return err
	}
	parts := splitPipe(args)
	if len(parts) < 2 || len(parts) > 3 {
		return usage("setservice <nom>|<prix>[|office|other]")
	}
	price, err := parsePrice(parts[1])
	if err != nil {
		return err
	}
	def := domain.ServiceDefinition{Name: parts[0], Price: price}
	if len(parts) == 3 {
		def.Category = domain.ServiceCategory(parts[2])
	}

	services := h.catalogs.ListServices(ctx)
	replaced := false
	for i := range services {
		if strings.EqualFold(services[i].Name, def.Name) {
			def.ID = services[i].ID
			if def.Category == "" {
				def.Category = services[i].Category
			}
			services[i] = def
			replaced = true
			break
		}
	}
	if !replaced {
		services = append(services, def)
	}

	_, err = h.catalogs.SetServices(ctx, user, services)
	return err
}

func (h *ConsoleHandler) removeService(ctx context.Context, args string) error {
	user, err := h.session.User()
	if err != nil {
		return err
	}
	name := strings.TrimSpace(args)
	if name == "" {
		return usage("rmservice <nom>")
	}

	services := h.catalogs.ListServices(ctx)
	kept := services[:0]
	for _, s := range services {
		if !strings.EqualFold(s.Name, name) {
			kept = append(kept, s)
		}
	}
	if len(kept) == len(services) {
		return fmt.Errorf("service %q: %w", name, domain.ErrNotFound)
	}

	_, err = h.catalogs.SetServices(ctx, user, kept)
	return err
}

func (h *ConsoleHandler) printHelp() {
	fmt.Fprint(h.out, `Commandes:
  login <pin> | logout | whoami | quit
  sell <produit> [quantité]
  money <in|out> <montant> <opérateur>
  bill <montant> <opérateur>
  office <quantité> <service> [= <montant>]
  other <montant> [détails]
  today | report [jours] | lowstock
  products | services | operators
  addproduct <nom>|<prix>|<stock>|<catégorie>[|<id>]
  editproduct <id>|<nom>|<prix>|<stock>|<catégorie>
  rmproduct <id>
  setservice <nom>|<prix>[|office|other] | rmservice <nom>
`)
}

func splitCommand(line string) (string, string) {
	line = strings.TrimSpace(line)
	cmd, args, _ := strings.Cut(line, " ")
	return strings.ToLower(cmd), strings.TrimSpace(args)
}

func splitPipe(args string) []string {
	if strings.TrimSpace(args) == "" {
		return nil
	}
	parts := strings.Split(args, "|")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

func productFromParts(name, price, stock, category string) (domain.Product, error) {
	p, err := parsePrice(price)
	if err != nil {
		return domain.Product{}, err
	}
	s, err := parseCount(stock)
	if err != nil {
		return domain.Product{}, fmt.Errorf("stock %q: %w", stock, domain.ErrInvalidProduct)
	}
	return domain.Product{Name: name, Price: p, Stock: s, Category: category}, nil
}

// parseCount reads a non-negative decimal count.
func parseCount(raw string) (int, error) {
	s := strings.TrimLeft(strings.TrimSpace(raw), "0")
	if s == "" && strings.TrimSpace(raw) != "" {
		return 0, nil
	}
	if s == "" || strings.ContainsAny(s, "xXoObB_+-") {
		return 0, fmt.Errorf("count %q is not a number", raw)
	}
	return cast.ToIntE(s)
}

func parsePrice(raw string) (int64, error) {
	if strings.Trim(strings.TrimSpace(raw), "0") == "" && strings.TrimSpace(raw) != "" {
		return 0, nil
	}
	return service.ParseAmount(raw)
}
