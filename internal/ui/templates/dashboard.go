package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// Dashboard renders the single-page dark-themed dashboard. KPI cards are
// patched in over SSE; charts pull their data from the REST API whenever
// the filters change.
func Dashboard() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, dashboardPage)
		return err
	})
}

const dashboardPage = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Game Vault Business Dashboard</title>
<script type="module" src="https://cdn.jsdelivr.net/gh/starfederation/datastar@main/bundles/datastar.js"></script>
<script src="https://cdn.jsdelivr.net/npm/chart.js@4"></script>
<style>
  body { background: #121212; color: #E0E0E0; font-family: system-ui, sans-serif; margin: 0; }
  h1, h2 { color: #F0F0F0; }
  header { padding: 20px 30px; border-bottom: 1px solid rgba(70,70,70,0.5); }
  header p { color: #BB86FC; margin: 4px 0 0; }
  main { display: flex; gap: 20px; padding: 20px 30px; }
  aside { background: #4B0082; border-radius: 16px; padding: 20px; min-width: 220px; height: fit-content; }
  aside label { display: block; font-weight: bold; margin: 12px 0 4px; }
  aside input, aside select { width: 100%; background: #6A0DAD; color: #E0E0E0; border: 1px solid #BB86FC; border-radius: 10px; padding: 6px; }
  aside button { margin-top: 16px; width: 100%; background: #BB86FC; color: #121212; border: none; border-radius: 10px; padding: 10px; font-weight: 700; cursor: pointer; }
  .content { flex: 1; }
  .kpi-grid { display: grid; grid-template-columns: repeat(5, 1fr); gap: 16px; }
  .kpi-card { background: #1F1F1F; border: 1px solid rgba(70,70,70,0.5); border-radius: 16px; padding: 20px; box-shadow: 8px 8px 20px rgba(0,0,0,0.7); }
  .kpi-label { color: #BB86FC; font-weight: 600; margin-bottom: 10px; }
  .kpi-value { color: #FFFFFF; font-size: 1.8em; font-weight: 700; }
  .chart-grid { display: grid; grid-template-columns: repeat(2, 1fr); gap: 16px; margin-top: 20px; }
  .chart-card { background: #1F1F1F; border: 1px solid rgba(70,70,70,0.5); border-radius: 16px; padding: 20px; }
  #charts-status { color: #BB86FC; font-size: 0.85em; margin-top: 10px; }
</style>
</head>
<body>
<header>
  <h1>Game Vault Business Dashboard</h1>
  <p>Expanded business insights, September 2027</p>
</header>
<main>
  <aside>
    <h2>Filter Data</h2>
    <label for="start">Start Date</label>
    <input type="date" id="start">
    <label for="end">End Date</label>
    <input type="date" id="end">
    <label for="game">Game Played</label>
    <select id="game"><option value="">All Games</option></select>
    <button data-on-click="@get('/sse/kpis?' + window.filterParams().toString()); window.refreshCharts()">Apply</button>
  </aside>
  <div class="content">
    <h2>Key Performance Indicators</h2>
    <div id="kpi-content" class="kpi-grid" data-on-load="@get('/sse/kpis')"></div>
    <h2>Core Business Insights</h2>
    <div class="chart-grid">
      <div class="chart-card"><h2>Most Played Games</h2><canvas id="games-chart"></canvas></div>
      <div class="chart-card"><h2>Top Customers by Spending</h2><canvas id="customers-chart"></canvas></div>
      <div class="chart-card"><h2>Expenses by Category</h2><canvas id="expenses-chart"></canvas></div>
      <div class="chart-card"><h2>Snack Popularity</h2><canvas id="snacks-chart"></canvas></div>
    </div>
    <h2>Revenue Trends &amp; Customer Feedback</h2>
    <div class="chart-grid">
      <div class="chart-card"><h2>Daily Revenue Trend</h2><canvas id="revenue-chart"></canvas></div>
      <div class="chart-card"><h2>Customer Rating Distribution</h2><canvas id="ratings-chart"></canvas></div>
    </div>
    <h2>Customer Demographics</h2>
    <div class="chart-card"><h2>Age Distribution</h2><canvas id="age-chart"></canvas></div>
    <div id="charts-status"></div>
  </div>
</main>
<script>
const charts = {};

function filterParams() {
  const params = new URLSearchParams();
  const start = document.getElementById('start').value;
  const end = document.getElementById('end').value;
  const game = document.getElementById('game').value;
  if (start) params.set('start', start);
  if (end) params.set('end', end);
  if (game) params.set('game', game);
  return params;
}

async function fetchData(path) {
  const params = filterParams();
  const qs = params.toString();
  const res = await fetch(qs ? path + '?' + qs : path);
  const body = await res.json();
  if (!body.success) throw new Error('request failed');
  return body.data;
}

function drawChart(id, type, labels, values, label, color) {
  if (charts[id]) charts[id].destroy();
  charts[id] = new Chart(document.getElementById(id), {
    type: type,
    data: { labels: labels, datasets: [{ label: label, data: values, backgroundColor: color, borderColor: color }] },
    options: { plugins: { legend: { labels: { color: '#FFFFFF' } } } }
  });
}

async function refreshCharts() {
  const [games, customers, expenses, snacks, revenue, ratings, ages] = await Promise.all([
    fetchData('/api/game-popularity'),
    fetchData('/api/top-customers'),
    fetchData('/api/expense-breakdown'),
    fetchData('/api/snack-popularity'),
    fetchData('/api/daily-revenue'),
    fetchData('/api/rating-distribution'),
    fetchData('/api/age-distribution'),
  ]);

  drawChart('games-chart', 'bar', games.map(g => g.game), games.map(g => g.plays), 'Plays', '#BB86FC');
  drawChart('customers-chart', 'bar', customers.map(c => c.customer_name), customers.map(c => c.total_paid), 'Total Paid (P)', '#87CEEB');
  drawChart('expenses-chart', 'doughnut', expenses.map(e => e.category), expenses.map(e => e.amount),
    'Amount (P)', ['#BB86FC', '#87CEEB', '#F08080', '#9370DB', '#66CDAA', '#FFB347']);
  drawChart('snacks-chart', 'bar', snacks.map(s => s.snack), snacks.map(s => s.quantity), 'Quantity Sold', '#F08080');
  drawChart('revenue-chart', 'line', revenue.map(r => r.date), revenue.map(r => r.total), 'Total Daily Revenue (P)', '#87CEEB');
  drawChart('ratings-chart', 'bar', ratings.map(r => r.rating), ratings.map(r => r.count), 'Number of Ratings', '#F08080');
  drawChart('age-chart', 'bar', ages.map(a => a.low + '-' + a.high), ages.map(a => a.count), 'Number of Customers', '#9370DB');
}

async function loadFilterOptions() {
  const data = await fetchData('/api/games');
  const select = document.getElementById('game');
  for (const game of data.games || []) {
    const opt = document.createElement('option');
    opt.value = game;
    opt.textContent = game;
    select.appendChild(opt);
  }
  if (data.min_date) document.getElementById('start').value = data.min_date;
  if (data.max_date) document.getElementById('end').value = data.max_date;
}

window.filterParams = filterParams;
window.refreshCharts = refreshCharts;

loadFilterOptions().then(refreshCharts);
</script>
</body>
</html>
`
